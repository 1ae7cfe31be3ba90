package assets

import "io"

// Releaser is implemented by payloads that free their own resources.
// Payloads implementing io.Closer are closed instead.
type Releaser interface {
	Release()
}

// ResourceOption configures a Resource created by NewResource.
type ResourceOption[T any] func(*resourceOptions[T])

type resourceOptions[T any] struct {
	release func(*T)
}

// WithReleaseFunc sets the function that frees the payload when the last
// owner releases. It replaces the default Close/Release dispatch.
func WithReleaseFunc[T any](fn func(*T)) ResourceOption[T] {
	return func(o *resourceOptions[T]) {
		o.release = fn
	}
}

// Resource is a reference-counted owner of a decoded payload of type T.
//
// All resources derived from one NewResource call (or one cache load) share
// the payload pointer and a single count. The payload is released exactly
// once, when the count reaches zero.
//
// The zero value is an empty resource with no payload and no identity.
// Like Handle, a Resource must not be copied by value.
type Resource[T any] struct {
	handle Handle
	data   *T
}

// NewResource takes ownership of data and returns a resource with a count
// of 1. The id may be empty for resources that never enter a cache.
func NewResource[T any](id Identity, data *T, opts ...ResourceOption[T]) *Resource[T] {
	var o resourceOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	release := o.release
	if release == nil {
		release = releasePayload[T]
	}
	return newResource(id, data, newRefCount(func() { release(data) }))
}

// newResource wraps a count whose unit is handed to the new resource.
func newResource[T any](id Identity, data *T, ref *refCount) *Resource[T] {
	r := &Resource[T]{data: data}
	r.handle.adopt(id, ref)
	return r
}

// releasePayload is the default payload release: Close for io.Closer,
// Release for Releaser, nothing otherwise.
func releasePayload[T any](data *T) {
	if data == nil {
		return
	}
	switch p := any(data).(type) {
	case io.Closer:
		if err := p.Close(); err != nil {
			Logger().Warn("assets: payload close failed", "type", typeName[T](), "error", err)
		}
	case Releaser:
		p.Release()
	}
}

// Clone returns a new resource sharing r's payload and count, incrementing
// the count. Cloning an empty resource returns an empty resource.
func (r *Resource[T]) Clone() *Resource[T] {
	r.handle.copyCheck()
	c := &Resource[T]{}
	if r.handle.ref != nil {
		r.handle.ref.inc()
		c.handle.adopt(r.handle.id, r.handle.ref)
		c.data = r.data
	}
	return c
}

// Move returns a new resource taking over r's payload and unit of the count.
// r becomes empty.
func (r *Resource[T]) Move() *Resource[T] {
	m := &Resource[T]{}
	m.MoveFrom(r)
	return m
}

// Assign makes r share src's payload and count. Assigning a resource to
// itself, or to one already sharing its count, does nothing.
func (r *Resource[T]) Assign(src *Resource[T]) {
	if r == src {
		return
	}
	data := src.data
	r.handle.Assign(&src.handle)
	r.data = data
	if r.handle.ref == nil {
		r.data = nil
	}
}

// MoveFrom transfers src's payload and unit of the count into r, releasing
// r's previous unit. src becomes empty.
func (r *Resource[T]) MoveFrom(src *Resource[T]) {
	if r == src {
		return
	}
	data := src.data
	r.handle.MoveFrom(&src.handle)
	src.data = nil
	r.data = data
	if r.handle.ref == nil {
		r.data = nil
	}
}

// Release drops r's unit of the count and empties r. The payload is released
// when this was the last owner. Releasing an empty or nil resource is a no-op.
func (r *Resource[T]) Release() {
	if r == nil {
		return
	}
	r.handle.Release()
	r.data = nil
}

// Data returns the payload, or nil if r is empty.
//
// The pointer is a borrow: it stays valid only while r (or another resource
// sharing its count) is alive, and must not be freed by the caller.
func (r *Resource[T]) Data() *T {
	if r == nil {
		return nil
	}
	return r.data
}

// Get returns the payload and whether r holds one.
func (r *Resource[T]) Get() (*T, bool) {
	d := r.Data()
	return d, d != nil
}

// RefCount returns the number of owners of r's count, or 0 if r is empty.
func (r *Resource[T]) RefCount() int {
	if r == nil {
		return 0
	}
	return r.handle.RefCount()
}

// Identity returns the identity of the resource, or "" if empty or uncached.
func (r *Resource[T]) Identity() Identity {
	if r == nil {
		return ""
	}
	return r.handle.Identity()
}

// Valid reports whether r owns a count.
func (r *Resource[T]) Valid() bool {
	return r != nil && r.handle.Valid()
}

// SharesWith reports whether r and other own units of the same count,
// and therefore the same payload.
func (r *Resource[T]) SharesWith(other *Resource[T]) bool {
	return r.Valid() && other.Valid() && r.handle.SharesWith(&other.handle)
}
