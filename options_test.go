package assets

import (
	"log/slog"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := applyOptions(nil)
	if o.logger != nil {
		t.Error("default logger should be nil (falls back to Logger())")
	}
	if o.retain != RetainNone {
		t.Errorf("default retain = %v, want none", o.retain)
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	l := slog.Default()
	o := applyOptions([]Option{WithRetain(), WithLogger(l), WithRetainPolicy(RetainNone)})
	if o.retain != RetainNone {
		t.Errorf("retain = %v, want the last option to win", o.retain)
	}
	if o.logger != l {
		t.Error("WithLogger not applied")
	}

	o = applyOptions([]Option{WithLogger(l), WithLogger(nil)})
	if o.logger != nil {
		t.Error("WithLogger(nil) should restore the package logger")
	}
}

func TestRetainPolicyString(t *testing.T) {
	tests := []struct {
		p    RetainPolicy
		want string
	}{
		{RetainNone, "none"},
		{RetainAll, "all"},
		{RetainPolicy(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("RetainPolicy(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestCacheUsesLogger(t *testing.T) {
	l := slog.Default()
	c := New(testRoot(), decodeBlob, WithLogger(l))
	if c.logger() != l {
		t.Error("cache logger() ignored WithLogger")
	}
	if New(testRoot(), decodeBlob).logger() != Logger() {
		t.Error("cache without WithLogger should use Logger()")
	}
}
