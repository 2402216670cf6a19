// Package blobstore provides the storage media under a resource store.
//
// A BlobStore holds small, whole-written records addressed by slash
// separated names. Implementations must be safe for concurrent use and must
// make Put atomic: a concurrent reader sees either the previous blob or the
// new one, never a partial write.
//
// # Built-in Implementations
//
//   - LocalStore: local (or mounted network) filesystem, temp-write + rename
//   - MemoryStore: in-process map, for tests and ephemeral pools
//   - CachingStore: read-through LRU in front of a slow store
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible servers
//   - redis.Store: Redis strings
//   - dynamodb.Store: DynamoDB items
//
// # Custom Implementations
//
// Implement the BlobStore interface to support other backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)       // ErrNotFound if missing
//	    Put(ctx, name, data) error          // atomic replace
//	    Delete(ctx, name) error             // nil if missing
//	    List(ctx, prefix) ([]string, error) // sorted names
//	}
package blobstore
