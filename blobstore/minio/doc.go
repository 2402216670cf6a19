// Package minio provides a MinIO implementation of the blobstore.BlobStore
// interface. It works with any S3-compatible server minio-go can talk to.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	store := minioblob.NewStore(client, "pools", "")
package minio
