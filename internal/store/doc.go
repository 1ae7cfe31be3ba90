// Package store provides the keyed map behind the asset caches.
//
// Map[K, V] is a mutex-guarded map that never evicts: entries leave only
// through Delete, CompareAndDelete or Drain. GetOrLoad runs the load function
// under the map lock, so concurrent misses for one key load once, and a
// failed load inserts nothing.
//
//	m := store.New[string, *entry]()
//	v, hit, err := m.GetOrLoad("tree.png", nil, func() (*entry, error) {
//	    return decode("tree.png")
//	})
//
// # Thread Safety
//
// Map is safe for concurrent use and must not be copied after creation.
// Callbacks passed to GetOrLoad and CompareAndDelete run with the lock held
// and must not call back into the same Map.
package store
