package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// StorageAPI is what the asset pipeline needs from an object store:
// write a local copy, push it to the remote side, make it publicly readable.
type StorageAPI interface {
	GetFullPath(path string) string
	Save(path string, reader io.Reader) (int64, error)
	UpdateRemoteFile(ctx context.Context, path, mimeType string) error
	SetPublicRead(ctx context.Context, path string) error
	ReleaseLocalFile(path string)
	BaseURL() string
	GetBucket() *Bucket
}

type Storage struct {
	Bucket Bucket
}

var (
	defaultStorage StorageAPI
)

func Init() {
	bucket := BucketFromConfig()
	if bucket.IsS3() {
		log.Info("Storage: S3", "bucket", bucket.Name, "region", bucket.Region)
	} else {
		log.Info("Storage: disk", "path", bucket.Path)
	}
	SetDefaultStorage(NewStorage(&bucket))
}

func NewStorage(bucket *Bucket) StorageAPI {
	if bucket.IsS3() {
		return NewS3Storage(bucket)
	}
	return NewDiskStorage(bucket)
}

func SetDefaultStorage(s StorageAPI) {
	defaultStorage = s
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

func (s *Storage) BaseURL() string {
	return s.Bucket.BaseURL
}

// saveLocal writes reader into fileName, creating the file's directory first
func saveLocal(fileName string, reader io.Reader, ensureDir func(string) error) (int64, error) {
	if err := ensureDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return result, err
}
