package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/healthassist/healthassist/config"
)

const tableContentType = "text/csv"

// ErrNoBackend is returned when archiving is requested without a configured
// object store.
var ErrNoBackend = errors.New("no storage backend configured")

// ErrObjectNotFound is returned by backends when no table is archived under
// the requested key.
var ErrObjectNotFound = errors.New("no archived table")

// ObjectStorage defines the object operations the table archive needs.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Archive copies persisted tables between the local disk and an object store.
type Archive struct {
	backend ObjectStorage
}

// NewArchive constructs an Archive for the provided backend.
func NewArchive(backend ObjectStorage) *Archive {
	return &Archive{backend: backend}
}

// Open builds the archive selected by cfg.Backend ("minio" or "gcs").
func Open(ctx context.Context, cfg config.StorageConfig) (*Archive, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Backend {
	case "minio":
		backend, err = NewMinioClient(cfg.Minio)
	case "gcs":
		backend, err = NewGCSClient(ctx, cfg.GCS)
	case "":
		return nil, ErrNoBackend
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return NewArchive(backend), nil
}

// Push uploads the table at path under key. An empty key uses the file name.
func (a *Archive) Push(ctx context.Context, path, key string) (string, error) {
	key = objectKey(path, key)

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if err := a.backend.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket %s: %w", a.backend.Bucket(), err)
	}
	if err := a.backend.Put(ctx, key, f, info.Size(), tableContentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// Pull downloads key into the table at path, replacing its contents. The
// object is staged next to path and renamed into place only once it has been
// read completely, so a failed download leaves the local table untouched.
func (a *Archive) Pull(ctx context.Context, key, path string) (string, error) {
	key = objectKey(path, key)

	r, err := a.backend.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", key, err)
	}
	defer r.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.csv")
	if err != nil {
		return "", err
	}
	staged := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(staged)
		return "", fmt.Errorf("download %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(staged)
		return "", fmt.Errorf("download %s: %w", key, err)
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return "", err
	}
	return key, nil
}

// Remove deletes an archived table.
func (a *Archive) Remove(ctx context.Context, key string) error {
	return a.backend.Delete(ctx, key)
}

// Bucket returns the bucket tables are archived in.
func (a *Archive) Bucket() string {
	return a.backend.Bucket()
}

func objectKey(path, key string) string {
	if strings.TrimSpace(key) != "" {
		return key
	}
	return filepath.Base(path)
}
