package smr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"smr-checker/core/storage"

	"github.com/minio/minio-go/v7"
)

var (
	// ErrFileNotFound is returned when a snapshot has no file with the requested name.
	ErrFileNotFound = errors.New("deviceinfo file not found")
	// ErrSnapshotNotFound is returned when the snapshot location itself does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Source gives access to the deviceinfo files of one snapshot.
type Source interface {
	// Label identifies the snapshot in logs, reports and cache keys.
	Label() string
	// ReadFile returns the first file whose base name matches name,
	// ignoring case, anywhere below the snapshot root.
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads a snapshot from a local directory tree, such as an
// unpacked CTS result folder. The tree is indexed once and reused for every file.
type DirSource struct {
	Root string

	once  sync.Once
	paths map[string]string
	err   error
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Root: dir}
}

// Label returns "dir:<root>".
func (d *DirSource) Label() string {
	return "dir:" + d.Root
}

// ReadFile reads the file whose base name matches name.
func (d *DirSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	d.once.Do(func() {
		d.paths, d.err = d.index(ctx)
	})
	if d.err != nil {
		return nil, d.err
	}

	found, ok := d.paths[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrFileNotFound, name, d.Root)
	}

	data, err := os.ReadFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", found, err)
	}
	return data, nil
}

// index maps lowercase base names to paths in walk order. The first path
// for a name wins. Unreadable subdirectories are skipped.
func (d *DirSource) index(ctx context.Context) (map[string]string, error) {
	info, err := os.Stat(d.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, d.Root)
	}

	paths := make(map[string]string)
	err = filepath.WalkDir(d.Root, func(p string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p != d.Root && entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return err
		}
		if entry.IsDir() {
			return nil
		}
		base := strings.ToLower(entry.Name())
		if _, exists := paths[base]; !exists {
			paths[base] = p
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", d.Root, err)
	}
	return paths, nil
}

// BucketSource reads a snapshot stored under a prefix of an object storage bucket.
// The object listing is fetched once and reused for every file.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string

	once sync.Once
	keys map[string]string
	err  error
}

// NewBucketSource creates a source over bucket/prefix.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Label returns "bucket:<bucket>/<prefix>".
func (b *BucketSource) Label() string {
	return "bucket:" + b.bucket + "/" + b.prefix
}

// ReadFile downloads the object whose base name matches name.
func (b *BucketSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	b.once.Do(func() {
		b.keys, b.err = b.list(ctx)
	})
	if b.err != nil {
		return nil, b.err
	}

	key, ok := b.keys[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrFileNotFound, name, b.Label())
	}

	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

// list indexes the objects under the prefix by lowercase base name.
// The first object listed for a name wins.
func (b *BucketSource) list(ctx context.Context) (map[string]string, error) {
	prefix := b.prefix
	if prefix != "" {
		prefix += "/"
	}

	keys := make(map[string]string)
	total := 0
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", b.Label(), obj.Err)
		}
		total++
		base := strings.ToLower(path.Base(obj.Key))
		if _, exists := keys[base]; !exists {
			keys[base] = obj.Key
		}
	}

	if total == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, b.Label())
	}
	return keys, nil
}
