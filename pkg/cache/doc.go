// Package cache provides a generic in-process LRU with optional per-entry TTL.
//
//	c := cache.New[string, postcode.Record](10_000, cache.WithTTL(24*time.Hour))
//	c.Put("1000001", rec)
//	rec, ok := c.Get("1000001")
//
// All methods are safe for concurrent use. Get, Put and Remove are O(1).
package cache
