package assets

import "sync/atomic"

// refCount is the counter shared by every handle derived from one NewHandle
// or NewResource call. release runs once, on the transition to zero.
type refCount struct {
	n       atomic.Int64
	release func()
}

func newRefCount(release func()) *refCount {
	r := &refCount{release: release}
	r.n.Store(1)
	return r
}

func (r *refCount) inc() { r.n.Add(1) }

// tryInc increments the count unless it already reached zero.
// Used by caches that keep a non-owning reference to the count.
func (r *refCount) tryInc() bool {
	for {
		n := r.n.Load()
		if n <= 0 {
			return false
		}
		if r.n.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (r *refCount) dec() {
	switch n := r.n.Add(-1); {
	case n == 0:
		if r.release != nil {
			r.release()
		}
	case n < 0:
		panic(ErrRefCountUnderflow)
	}
}

// Handle is a reference-counted handle to a logical resource.
//
// The zero value is an empty handle: it refers to nothing, reports a
// RefCount of 0 and releasing it is a no-op. NewHandle creates an owning
// handle with a count of 1; Clone and Assign add owners, Release and
// reassignment drop them, and the release callback runs when the last owner
// goes away.
//
// A Handle must be used through a pointer. Copying a live Handle by value
// (h2 := *h) is detected and panics on the next call on the copy.
type Handle struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It points to the Handle itself once the handle owns a count.
	addr *Handle

	id  Identity
	ref *refCount
}

// NewHandle returns an owning handle for id with a count of 1.
// release, if non-nil, runs exactly once when the last owner releases.
func NewHandle(id Identity, release func()) *Handle {
	h := &Handle{}
	h.adopt(id, newRefCount(release))
	return h
}

// adopt makes h the owner of one unit of ref without incrementing it.
func (h *Handle) adopt(id Identity, ref *refCount) {
	h.addr = h
	h.id = id
	h.ref = ref
}

// copyCheck panics if h was copied by value from a live handle.
func (h *Handle) copyCheck() {
	if h.addr != nil && h.addr != h {
		panic("assets: Handle must not be copied by value")
	}
}

// Clone returns a new handle sharing h's count and identity, incrementing
// the count. Cloning an empty handle returns an empty handle.
func (h *Handle) Clone() *Handle {
	h.copyCheck()
	c := &Handle{}
	if h.ref != nil {
		h.ref.inc()
		c.adopt(h.id, h.ref)
	}
	return c
}

// Move returns a new handle taking over h's unit of the count without
// incrementing it. h becomes empty; releasing it afterwards is a no-op.
func (h *Handle) Move() *Handle {
	h.copyCheck()
	m := &Handle{}
	if h.ref != nil {
		m.adopt(h.id, h.ref)
	}
	h.id, h.ref = "", nil
	return m
}

// Assign makes h share src's count and identity.
//
// If h and src already share a count, or h is src, Assign does nothing.
// Otherwise src's count is incremented and then h's previous count is
// decremented, releasing its payload if h was the last owner.
func (h *Handle) Assign(src *Handle) {
	h.copyCheck()
	src.copyCheck()
	if h == src || h.ref == src.ref {
		return
	}

	old := h.ref
	if src.ref != nil {
		src.ref.inc()
		h.adopt(src.id, src.ref)
	} else {
		h.id, h.ref = "", nil
	}
	if old != nil {
		old.dec()
	}
}

// MoveFrom transfers src's unit of the count into h, dropping h's previous
// unit. src becomes empty. MoveFrom(h) is a no-op.
func (h *Handle) MoveFrom(src *Handle) {
	h.copyCheck()
	src.copyCheck()
	if h == src {
		return
	}

	old := h.ref
	if src.ref != nil {
		h.adopt(src.id, src.ref)
	} else {
		h.id, h.ref = "", nil
	}
	src.id, src.ref = "", nil
	if old != nil {
		old.dec()
	}
}

// Release drops h's unit of the count and empties h. When the count reaches
// zero the release callback runs. Releasing an empty or nil handle, or
// releasing the same handle twice, is a no-op.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.copyCheck()
	ref := h.ref
	h.id, h.ref = "", nil
	if ref != nil {
		ref.dec()
	}
}

// RefCount returns the number of owners of h's count, or 0 if h is empty.
func (h *Handle) RefCount() int {
	if h == nil || h.ref == nil {
		return 0
	}
	return int(h.ref.n.Load())
}

// Identity returns the identity recorded by the handle, or "" if empty.
func (h *Handle) Identity() Identity {
	if h == nil {
		return ""
	}
	return h.id
}

// Valid reports whether h owns a count.
func (h *Handle) Valid() bool {
	return h != nil && h.ref != nil
}

// SharesWith reports whether h and other own units of the same count.
// Two empty handles do not share.
func (h *Handle) SharesWith(other *Handle) bool {
	return h.Valid() && other.Valid() && h.ref == other.ref
}
