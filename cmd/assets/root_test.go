package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/assets"
)

// writeAssets creates an assets directory with one asset of each kind.
func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	files := map[string][]byte{
		"tree.png":          buf.Bytes(),
		"fonts/regular.ttf": goregular.TTF,
		"shaders/fill.wgsl": []byte("@compute @workgroup_size(1)\nfn main() {}\n"),
		"notes/readme.txt":  []byte("not an asset kind"),
	}
	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { assets.SetLogger(nil) })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExists(t *testing.T) {
	dir := writeAssets(t)

	out, err := run(t, "--root", dir, "exists", "tree.png", `fonts\regular.ttf`)
	if err != nil {
		t.Fatalf("exists: %v\n%s", err, out)
	}
	if !strings.Contains(out, "tree.png\ttrue") || !strings.Contains(out, "regular.ttf\ttrue") {
		t.Errorf("exists output = %q", out)
	}

	out, err = run(t, "--root", dir, "exists", "tree.png", "missing.png")
	if err == nil {
		t.Fatal("exists with a missing asset succeeded")
	}
	if !strings.Contains(out, "missing.png\tfalse") {
		t.Errorf("exists output = %q", out)
	}
}

func TestLoad(t *testing.T) {
	dir := writeAssets(t)

	out, err := run(t, "--root", dir, "load", "tree.png", "fonts/regular.ttf", "shaders/fill.wgsl")
	if err != nil {
		t.Fatalf("load: %v\n%s", err, out)
	}
	for _, want := range []string{"texture", "tree.png", "256 B", "font", "shader"} {
		if !strings.Contains(out, want) {
			t.Errorf("load output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.Contains(line, "tree.png") {
			if fields := strings.Fields(line); len(fields) < 3 || fields[2] != "2" {
				t.Errorf("tree.png line = %q, want refs 2", line)
			}
		}
		if strings.HasPrefix(line, "total") {
			// 3 entries, 3 hits, 3 misses, 3 loads, 0 failures
			if fields := strings.Fields(line); strings.Join(fields[1:], " ") != "3 3 3 3 0" {
				t.Errorf("total line = %q", line)
			}
		}
	}
}

func TestLoadRetain(t *testing.T) {
	dir := writeAssets(t)

	out, err := run(t, "--root", dir, "--retain", "load", "tree.png")
	if err != nil {
		t.Fatalf("load --retain: %v\n%s", err, out)
	}
	found := false
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "tree.png") {
			found = true
			if fields := strings.Fields(line); len(fields) < 3 || fields[2] != "3" {
				t.Errorf("tree.png line = %q, want refs 3 (two callers + cache)", line)
			}
		}
	}
	if !found {
		t.Errorf("load output has no tree.png row:\n%s", out)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := writeAssets(t)

	if _, err := run(t, "--root", dir, "load", "missing.png"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("load missing.png error = %v, want not found", err)
	}
	if _, err := run(t, "--root", dir, "load", "notes/readme.txt"); err == nil {
		t.Error("load of an unknown kind succeeded")
	}
}

func TestLs(t *testing.T) {
	dir := writeAssets(t)

	out, err := run(t, "--root", dir, "ls")
	if err != nil {
		t.Fatalf("ls: %v\n%s", err, out)
	}
	want := []string{"fonts/regular.ttf", "notes/readme.txt", "shaders/fill.wgsl", "tree.png"}
	last := -1
	for _, id := range want {
		i := strings.Index(out, id)
		if i < 0 {
			t.Fatalf("ls output missing %s:\n%s", id, out)
		}
		if i < last {
			t.Errorf("ls output not in lexical order:\n%s", out)
		}
		last = i
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "readme.txt") && strings.Fields(line)[0] != "-" {
			t.Errorf("unknown kind line = %q, want kind -", line)
		}
	}
}

func TestLogFileAndLevel(t *testing.T) {
	dir := writeAssets(t)
	logPath := filepath.Join(t.TempDir(), "log.txt")

	out, err := run(t, "--root", dir, "--log-level", "debug", "--log-file", logPath, "load", "tree.png")
	if err != nil {
		t.Fatalf("load: %v\n%s", err, out)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	log := string(data)
	for _, want := range []string{"][INFO] assets: library awake", "][DEBUG] assets: loaded identity=tree.png", "assets: cache hit"} {
		if !strings.Contains(log, want) {
			t.Errorf("log file missing %q:\n%s", want, log)
		}
	}
	if !strings.Contains(out, "assets: library awake") {
		t.Error("log lines not mirrored to stdout")
	}
}

func TestFailingCommandShutsDown(t *testing.T) {
	dir := writeAssets(t)
	logPath := filepath.Join(t.TempDir(), "log.txt")

	_, err := run(t, "--root", dir, "--retain", "--log-level", "debug", "--log-file", logPath,
		"load", "tree.png", "missing.png")
	if err == nil {
		t.Fatal("load with a missing asset succeeded")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "assets: cache cleared") {
		t.Errorf("library not shut down after a failing command:\n%s", data)
	}
	if assets.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("logger not restored after a failing command")
	}
}

func TestEnvConfig(t *testing.T) {
	dir := writeAssets(t)
	t.Setenv("ASSETS_ROOT", dir)

	out, err := run(t, "exists", "tree.png")
	if err != nil {
		t.Fatalf("exists with ASSETS_ROOT: %v\n%s", err, out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := writeAssets(t)
	cfg := filepath.Join(t.TempDir(), "assets.toml")
	content := "root = " + `"` + filepath.ToSlash(dir) + `"` + "\nretain = true\n"
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", cfg, "load", "tree.png")
	if err != nil {
		t.Fatalf("load with config: %v\n%s", err, out)
	}
	if !strings.Contains(out, "texture") {
		t.Errorf("load output = %q", out)
	}

	if _, err := run(t, "--config", filepath.Join(dir, "nope.toml"), "ls"); err == nil {
		t.Error("missing explicit config file did not fail")
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := run(t, "--log-level", "loud", "ls"); err == nil || !strings.Contains(err.Error(), "unknown log level") {
		t.Errorf("error = %v, want unknown log level", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]string{
		"a.PNG":    kindTexture,
		"b/c.jpeg": kindTexture,
		`d\e.webp`: kindTexture,
		"f.otf":    kindFont,
		"g.wgsl":   kindShader,
		"h.txt":    "",
		"noext":    "",
	}
	for name, want := range tests {
		if got := kindOf(name); got != want {
			t.Errorf("kindOf(%q) = %q, want %q", name, got, want)
		}
	}
}
