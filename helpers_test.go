package uploadkit

import (
	"context"
	"path"
	"strings"
	"sync"
)

// fakeStorage is a minimal in-memory Storage for tests.
type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
	reads int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"": true},
	}
}

func (s *fakeStorage) add(handle string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[handle] = data
}

func (s *fakeStorage) mkdir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[dir] = true
}

func (s *fakeStorage) ReadAll(ctx context.Context, handle string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	data, ok := s.files[handle]
	if !ok {
		return nil, &PathError{Op: "read", Path: handle, Err: ErrNotExist}
	}
	return data, nil
}

func (s *fakeStorage) Move(ctx context.Context, handle, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[handle]
	if !ok {
		return &PathError{Op: "move", Path: handle, Err: ErrNotExist}
	}
	delete(s.files, handle)
	s.files[dest] = data
	return nil
}

func (s *fakeStorage) DirExists(ctx context.Context, p string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirs[strings.TrimSuffix(path.Clean(p), "/")], nil
}
