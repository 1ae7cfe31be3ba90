package assets

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/gogpu/assets/module"
)

// kindCache is the type-erased view of a Cache[T] used by Library.
type kindCache interface {
	contains(id Identity) bool
	unload(id Identity) bool
	Clear()
	Len() int
	Stats() Stats
	ResetStats()
}

// kind is one registered payload type.
type kind struct {
	name  string
	typ   reflect.Type
	cache kindCache
}

// Library is the engine's resource module: one Cache per payload type, all
// reading from the same Root.
//
// Every identity belongs to at most one kind at a time. Loading an identity
// that is live under another kind fails with *TypeMismatchError instead of
// reinterpreting the payload.
//
// Library implements module.Module. Destroy and Finalize clear all caches;
// the other phases do no work.
//
// Library is safe for concurrent use.
type Library struct {
	module.Base

	root *Root
	opts []Option

	mu     sync.Mutex
	kinds  []*kind
	byType map[reflect.Type]*kind
}

// NewLibrary creates a library reading from root. A nil root uses
// DefaultRoot. The options apply to every cache registered on the library,
// before the per-kind options passed to Register.
func NewLibrary(root *Root, opts ...Option) *Library {
	if root == nil {
		root = DefaultRoot()
	}
	return &Library{
		root:   root,
		opts:   opts,
		byType: make(map[reflect.Type]*kind),
	}
}

// Root returns the root shared by all caches of the library.
func (l *Library) Root() *Root { return l.root }

// init lazily sets up a zero Library, such as one made by module.Create.
// Caller must hold l.mu.
func (l *Library) init() {
	if l.root == nil {
		l.root = DefaultRoot()
	}
	if l.byType == nil {
		l.byType = make(map[reflect.Type]*kind)
	}
}

// Register adds a cache for payload type T under the given kind name.
// Registering the same type or kind name twice returns ErrKindRegistered.
func Register[T any](l *Library, name string, decode DecodeFunc[T], opts ...Option) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.init()

	typ := reflect.TypeFor[T]()
	if k, ok := l.byType[typ]; ok {
		return fmt.Errorf("%w: %s already registered as %q", ErrKindRegistered, typ, k.name)
	}
	for _, k := range l.kinds {
		if k.name == name {
			return fmt.Errorf("%w: kind %q already holds %s", ErrKindRegistered, name, k.typ)
		}
	}

	all := append(slices.Clone(l.opts), opts...)
	k := &kind{name: name, typ: typ, cache: New(l.root, decode, all...)}
	l.kinds = append(l.kinds, k)
	l.byType[typ] = k
	return nil
}

// Load returns an owner of the T payload for name, decoding it on first use.
//
// It fails with ErrKindNotRegistered if no cache holds T, with
// *TypeMismatchError if name is live under another kind, and otherwise as
// Cache.Load does.
func Load[T any](l *Library, name string) (*Resource[T], error) {
	id, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.init()

	k, ok := l.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKindNotRegistered, typeName[T]())
	}
	for _, other := range l.kinds {
		if other != k && other.cache.contains(id) {
			return nil, &TypeMismatchError{Identity: id, Cached: other.name, Requested: k.name}
		}
	}
	return k.cache.(*Cache[T]).load(id)
}

// CacheFor returns the cache registered for T.
func CacheFor[T any](l *Library) (*Cache[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k, ok := l.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return k.cache.(*Cache[T]), true
}

// Kind returns the name of the kind currently holding name.
func (l *Library) Kind(name string) (string, bool) {
	id, err := Normalize(name)
	if err != nil {
		return "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, k := range l.kinds {
		if k.cache.contains(id) {
			return k.name, true
		}
	}
	return "", false
}

// Kinds returns the registered kind names in registration order.
func (l *Library) Kinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, len(l.kinds))
	for i, k := range l.kinds {
		names[i] = k.name
	}
	return names
}

// Unload removes name from whichever kind holds it.
// Returns true if an entry was removed.
func (l *Library) Unload(name string) bool {
	id, err := Normalize(name)
	if err != nil {
		return false
	}

	l.mu.Lock()
	kinds := slices.Clone(l.kinds)
	l.mu.Unlock()

	removed := false
	for _, k := range kinds {
		if k.cache.unload(id) {
			removed = true
		}
	}
	return removed
}

// Clear removes every entry of every kind.
func (l *Library) Clear() {
	l.mu.Lock()
	kinds := slices.Clone(l.kinds)
	l.mu.Unlock()

	for _, k := range kinds {
		k.cache.Clear()
	}
}

// Len returns the number of cached identities across all kinds.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, k := range l.kinds {
		n += k.cache.Len()
	}
	return n
}

// Stats returns per-kind statistics keyed by kind name.
func (l *Library) Stats() map[string]Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make(map[string]Stats, len(l.kinds))
	for _, k := range l.kinds {
		stats[k.name] = k.cache.Stats()
	}
	return stats
}

// ResetStats zeroes the statistics of every kind.
func (l *Library) ResetStats() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, k := range l.kinds {
		k.cache.ResetStats()
	}
}

// Awake logs the library configuration. It performs no I/O.
func (l *Library) Awake() {
	l.mu.Lock()
	l.init()
	root, kinds := l.root.Dir(), len(l.kinds)
	l.mu.Unlock()

	Logger().Info("assets: library awake", "root", root, "kinds", kinds)
}

// Destroy clears every cache.
func (l *Library) Destroy() {
	l.Clear()
}

// Finalize clears every cache. It is safe to call after Destroy.
func (l *Library) Finalize() {
	l.Clear()
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

var _ module.Module = (*Library)(nil)
