// Package csync provides thread-safe generic collections.
//
// OrderedMap is a keyed collection that remembers insertion order, which is what a
// json-server style backend needs: lookups by ID plus listings in the order records
// were created. All operations take a read-write mutex, so an OrderedMap can be
// shared between HTTP handlers without extra locking.
//
// Example usage:
//
//	products := csync.NewOrderedMap[int, catalog.Product]()
//	products.Set(p.ID, p)
//	if p, ok := products.Get(3); ok {
//		// use p
//	}
//	all := products.Values() // creation order
package csync
