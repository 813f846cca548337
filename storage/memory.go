package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStorage keeps objects in memory. Useful for tests and local experiments.
type MemoryStorage struct {
	Storage
	mu      sync.Mutex
	local   map[string][]byte
	Objects map[string][]byte
	Types   map[string]string
	Public  map[string]bool
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		Storage: Storage{
			Bucket: Bucket{Name: "memory", BaseURL: baseURL},
		},
		local:   map[string][]byte{},
		Objects: map[string][]byte{},
		Types:   map[string]string{},
		Public:  map[string]bool{},
	}
}

func (s *MemoryStorage) GetFullPath(path string) string {
	return "memory://" + path
}

func (s *MemoryStorage) Save(path string, reader io.Reader) (int64, error) {
	buf := bytes.Buffer{}
	n, err := io.Copy(&buf, reader)
	if err != nil {
		return n, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[path] = buf.Bytes()
	return n, nil
}

func (s *MemoryStorage) UpdateRemoteFile(ctx context.Context, path, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.local[path]
	if !ok {
		return fmt.Errorf("no local copy of %s", path)
	}
	s.Objects[path] = data
	s.Types[path] = mimeType
	return nil
}

func (s *MemoryStorage) SetPublicRead(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Objects[path]; !ok {
		return fmt.Errorf("no object %s", path)
	}
	s.Public[path] = true
	return nil
}

func (s *MemoryStorage) ReleaseLocalFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.local, path)
}

// LocalFiles returns the number of local copies not released yet
func (s *MemoryStorage) LocalFiles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.local)
}
