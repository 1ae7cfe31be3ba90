package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/gogpu/assets/internal/store"
)

// DecodeFunc converts the raw bytes of an asset into a payload.
//
// A decoder that fails may still return a partially built payload; the cache
// releases it before reporting the failure.
type DecodeFunc[T any] func(data []byte) (*T, error)

// entry is the cache's record of one live payload.
type entry[T any] struct {
	id   Identity
	data *T
	ref  *refCount

	// pin is the cache's own owner under RetainAll, nil otherwise.
	pin *Resource[T]
}

func (e *entry[T]) alive() bool { return e.ref.n.Load() > 0 }

// acquire returns a new owner of the entry, or nil if its count already
// reached zero.
func (e *entry[T]) acquire() *Resource[T] {
	if !e.ref.tryInc() {
		return nil
	}
	return newResource(e.id, e.data, e.ref)
}

// Cache loads payloads of type T from a Root and deduplicates them by identity.
//
// For every identity the cache holds at most one live payload. Load returns a
// new owner of that payload on a hit and decodes exactly once on a miss. A
// failed load inserts nothing, so the next Load retries from scratch.
//
// Cache is safe for concurrent use. The decoder runs under the cache lock.
type Cache[T any] struct {
	root    *Root
	decode  DecodeFunc[T]
	opts    options
	entries *store.Map[Identity, *entry[T]]

	loads    atomic.Uint64
	failures atomic.Uint64
	releases atomic.Uint64
}

// New creates a cache decoding assets under root with decode.
// A nil root uses DefaultRoot. New panics if decode is nil.
func New[T any](root *Root, decode DecodeFunc[T], opts ...Option) *Cache[T] {
	if decode == nil {
		panic("assets: New called with nil DecodeFunc")
	}
	if root == nil {
		root = DefaultRoot()
	}
	return &Cache[T]{
		root:    root,
		decode:  decode,
		opts:    applyOptions(opts),
		entries: store.New[Identity, *entry[T]](),
	}
}

// Root returns the root the cache loads from.
func (c *Cache[T]) Root() *Root { return c.root }

// RetainPolicy returns the policy the cache was created with.
func (c *Cache[T]) RetainPolicy() RetainPolicy { return c.opts.retain }

func (c *Cache[T]) logger() *slog.Logger {
	if c.opts.logger != nil {
		return c.opts.logger
	}
	return Logger()
}

// Load returns an owner of the payload for name, decoding it on first use.
//
// On a hit no I/O happens and the returned resource shares the payload and
// count of every earlier result. On a miss the asset must exist under the
// root (ErrNotFound otherwise, without decoding); a decoder failure returns a
// *DecodeError. On any error the returned resource is nil and the cache is
// unchanged.
//
// The caller owns the returned resource and must Release it.
func (c *Cache[T]) Load(name string) (*Resource[T], error) {
	id, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	return c.load(id)
}

func (c *Cache[T]) load(id Identity) (*Resource[T], error) {
	var out *Resource[T]
	_, hit, err := c.entries.GetOrLoad(id,
		func(e *entry[T]) bool {
			out = e.acquire()
			return out != nil
		},
		func() (*entry[T], error) {
			e, err := c.decodeEntry(id)
			if err != nil {
				return nil, err
			}
			out = newResource(id, e.data, e.ref)
			if c.opts.retain == RetainAll {
				e.pin = out.Clone()
			}
			return e, nil
		})
	if err != nil {
		return nil, err
	}

	if hit {
		c.logger().Debug("assets: cache hit", "identity", id, "refs", out.RefCount())
	} else {
		c.logger().Debug("assets: loaded", "identity", id, "type", typeName[T]())
	}
	return out, nil
}

// decodeEntry reads and decodes id. Runs under the cache lock.
func (c *Cache[T]) decodeEntry(id Identity) (*entry[T], error) {
	if !c.root.exists(id) {
		c.failures.Add(1)
		c.logger().Warn("assets: not found", "identity", id, "root", c.root.Dir())
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	raw, err := c.root.ReadFile(id)
	if err != nil {
		c.failures.Add(1)
		c.logger().Warn("assets: read failed", "identity", id, "error", err)
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &DecodeError{Identity: id, Err: err}
	}

	data, err := c.decode(raw)
	if err == nil && data == nil {
		err = ErrNoPayload
	}
	if err != nil {
		// Full rollback: a partial payload never outlives the failed load.
		releasePayload(data)
		c.failures.Add(1)
		c.logger().Warn("assets: decode failed", "identity", id, "error", err)
		return nil, &DecodeError{Identity: id, Err: err}
	}

	c.loads.Add(1)
	e := &entry[T]{id: id, data: data}
	e.ref = newRefCount(func() { c.releaseEntry(e) })
	return e, nil
}

// releaseEntry runs when the last owner of e releases.
func (c *Cache[T]) releaseEntry(e *entry[T]) {
	c.entries.CompareAndDelete(e.id, func(cur *entry[T]) bool { return cur == e })
	releasePayload(e.data)
	c.releases.Add(1)
	c.logger().Debug("assets: released", "identity", e.id)
}

// Unload removes the entry for name and drops the cache's own reference, if
// it holds one. Resources already handed out stay valid; the payload is
// released when the last of them is released. Returns true if an entry was
// removed.
func (c *Cache[T]) Unload(name string) bool {
	id, err := Normalize(name)
	if err != nil {
		return false
	}
	return c.unload(id)
}

func (c *Cache[T]) unload(id Identity) bool {
	e, ok := c.entries.Delete(id)
	if !ok {
		return false
	}
	// Outside the map lock: the release may call back into releaseEntry.
	if e.pin != nil {
		e.pin.Release()
	}
	c.logger().Debug("assets: unloaded", "identity", id)
	return true
}

// Clear removes every entry, dropping the cache's own references.
// Use at shutdown.
func (c *Cache[T]) Clear() {
	drained := c.entries.Drain()
	for _, e := range drained {
		if e.pin != nil {
			e.pin.Release()
		}
	}
	if len(drained) > 0 {
		c.logger().Debug("assets: cache cleared", "type", typeName[T](), "entries", len(drained))
	}
}

// Contains reports whether name has a live entry. It never loads.
func (c *Cache[T]) Contains(name string) bool {
	id, err := Normalize(name)
	if err != nil {
		return false
	}
	return c.contains(id)
}

func (c *Cache[T]) contains(id Identity) bool {
	return c.entries.Contains(id, (*entry[T]).alive)
}

// RefCount returns the number of owners of the entry for name, or 0 if
// name is not cached. It never loads and takes no reference.
func (c *Cache[T]) RefCount(name string) int {
	id, err := Normalize(name)
	if err != nil {
		return 0
	}
	e, ok := c.entries.Get(id)
	if !ok {
		return 0
	}
	return int(e.ref.n.Load())
}

// Len returns the number of cached identities.
func (c *Cache[T]) Len() int {
	return c.entries.Len()
}

// Identities returns the cached identities in sorted order.
func (c *Cache[T]) Identities() []Identity {
	ids := c.entries.Keys()
	slices.Sort(ids)
	return ids
}

// Stats returns current cache statistics.
func (c *Cache[T]) Stats() Stats {
	s := c.entries.Stats()
	return Stats{
		Entries:  s.Len,
		Hits:     s.Hits,
		Misses:   s.Misses,
		HitRate:  s.HitRate,
		Loads:    c.loads.Load(),
		Failures: c.failures.Load(),
		Releases: c.releases.Load(),
	}
}

// ResetStats zeroes the hit, miss, load, failure and release counters.
// Entries are kept.
func (c *Cache[T]) ResetStats() {
	c.entries.ResetStats()
	c.loads.Store(0)
	c.failures.Store(0)
	c.releases.Store(0)
}

// Stats contains cache statistics.
type Stats struct {
	// Entries is the current number of cached identities.
	Entries int
	// Hits is the number of loads served without decoding.
	Hits uint64
	// Misses is the number of loads that tried to decode.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
	// Loads is the number of successful decodes.
	Loads uint64
	// Failures is the number of misses that ended in an error.
	Failures uint64
	// Releases is the number of payloads released after their last owner.
	Releases uint64
}

// Add returns the field-wise sum of s and o. HitRate is recomputed.
func (s Stats) Add(o Stats) Stats {
	sum := Stats{
		Entries:  s.Entries + o.Entries,
		Hits:     s.Hits + o.Hits,
		Misses:   s.Misses + o.Misses,
		Loads:    s.Loads + o.Loads,
		Failures: s.Failures + o.Failures,
		Releases: s.Releases + o.Releases,
	}
	if total := sum.Hits + sum.Misses; total > 0 {
		sum.HitRate = float64(sum.Hits) / float64(total)
	}
	return sum
}
