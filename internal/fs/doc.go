// Package fs provides the filesystem seam under the local blob store.
//
// [FileSystem] and [File] cover only the calls the local blob store makes.
// [Default] forwards them to the os package; [FaultyFS] wraps any
// FileSystem and fails matching paths on demand.
//
// [WriteFileAtomic] publishes a file with temp-write, fsync, rename and a
// directory fsync, so readers observe either the old or the new content and
// never a partial write.
//
// Operations take no context.Context. Local syscalls are not interruptible;
// slow backends belong behind a blob store, which has context support.
package fs
