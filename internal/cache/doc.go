// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, uint32](128)
//	c.Set("Metals.grd", sum)
//	prev, ok := c.Get("Metals.grd")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
