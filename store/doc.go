// Package store implements the durable local store of a resource pool.
//
// A Store keeps one framed record per resource name on a blobstore.BlobStore,
// under the pool's own prefix:
//
//	<escaped pool>/<escaped name>.res
//
// Writes are atomic replaces, so a reader sees either the previous value or
// the new one. Operations on the same name are serialized; distinct names
// never block each other. A new Store on the same medium and pool name sees
// exactly the records that were put and not removed.
package store
