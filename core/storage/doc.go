// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the SMR
// feature needs: listing a snapshot prefix, downloading deviceinfo files,
// publishing reports and checking bucket access. Both AWS S3 and
// self-hosted MinIO are supported.
//
// The interface makes storage easy to mock in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
