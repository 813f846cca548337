package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// DiskRoute is where the HTTP server exposes disk storage files
const DiskRoute = "/files"

type DiskStorage struct {
	Storage
	// BasePath is a directory that is writable by the current process
	BasePath string
	dirs     cmap.ConcurrentMap[string, bool]
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	return &DiskStorage{
		BasePath: bucket.Path,
		Storage: Storage{
			Bucket: *bucket,
		},
		dirs: cmap.New[bool](),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	if s.dirs.Has(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.dirs.Set(dir, true)
	return nil
}

func (s *DiskStorage) GetFullPath(path string) string {
	return filepath.Join(s.BasePath, filepath.Clean("/"+path))
}

func (s *DiskStorage) Save(path string, reader io.Reader) (int64, error) {
	return saveLocal(s.GetFullPath(path), reader, s.createDir)
}

// UpdateRemoteFile is a no-op, the saved file is already the final copy
func (s *DiskStorage) UpdateRemoteFile(ctx context.Context, path, mimeType string) error {
	_, err := os.Stat(s.GetFullPath(path))
	return err
}

func (s *DiskStorage) SetPublicRead(ctx context.Context, path string) error {
	return os.Chmod(s.GetFullPath(path), 0644)
}

// ReleaseLocalFile keeps the file, it is what gets served
func (s *DiskStorage) ReleaseLocalFile(path string) {}
