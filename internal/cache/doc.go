// Package cache provides a byte-capacity LRU for stored records.
//
// Keys are blob names. Cached slices are shared and must be treated as
// read-only by callers.
package cache
