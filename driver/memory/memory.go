package memory

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"github.com/gobeaver/uploadkit"
)

// memoryFile represents an upload held in memory
type memoryFile struct {
	content []byte
	modTime time.Time
}

// memoryDir represents a directory in memory
type memoryDir struct {
	modTime time.Time
}

// Adapter provides an in-memory implementation of uploadkit.Storage.
// Temporary uploads and their permanent destinations share one namespace.
// Useful for testing.
type Adapter struct {
	mu      sync.RWMutex
	files   map[string]*memoryFile
	dirs    map[string]*memoryDir
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64 // Current total size
}

// Config holds configuration for the memory adapter
type Config struct {
	// MaxSize is the maximum total storage size in bytes (0 = unlimited)
	MaxSize int64
}

// New creates a new in-memory storage adapter
func New(cfg ...Config) *Adapter {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}

	a := &Adapter{
		files:   make(map[string]*memoryFile),
		dirs:    make(map[string]*memoryDir),
		maxSize: maxSize,
	}

	// Create root directory
	a.dirs[""] = &memoryDir{modTime: time.Now()}

	return a
}

// Add stores data under handle, replacing any previous content. It is how
// tests and in-process transports stage a temporary upload.
func (a *Adapter) Add(handle string, data []byte) error {
	handle = normalizePath(handle)
	if handle == "" || !isValidPath(handle) {
		return &uploadkit.PathError{Op: "add", Path: handle, Err: uploadkit.ErrNotAllowed}
	}

	content := make([]byte, len(data))
	copy(content, data)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, isDir := a.dirs[handle]; isDir {
		return &uploadkit.PathError{Op: "add", Path: handle, Err: uploadkit.ErrIsDir}
	}

	newSize := a.size + int64(len(content))
	if existing, exists := a.files[handle]; exists {
		newSize -= int64(len(existing.content))
	}
	if a.maxSize > 0 && newSize > a.maxSize {
		return &uploadkit.PathError{Op: "add", Path: handle, Err: uploadkit.ErrInvalidSize}
	}

	a.ensureParentDirs(handle)
	a.files[handle] = &memoryFile{content: content, modTime: time.Now()}
	a.size = newSize

	return nil
}

// ReadAll implements uploadkit.Reader
func (a *Adapter) ReadAll(ctx context.Context, handle string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	handle = normalizePath(handle)

	a.mu.RLock()
	defer a.mu.RUnlock()

	file, exists := a.files[handle]
	if !exists {
		return nil, &uploadkit.PathError{Op: "read", Path: handle, Err: uploadkit.ErrNotExist}
	}

	// Return a copy of the content to prevent modification
	out := make([]byte, len(file.content))
	copy(out, file.content)
	return out, nil
}

// Move implements uploadkit.Mover. An existing destination file is replaced.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	src = normalizePath(src)
	dst = normalizePath(dst)

	if !isValidPath(src) || !isValidPath(dst) || dst == "" {
		return &uploadkit.PathError{Op: "move", Path: src, Err: uploadkit.ErrNotAllowed}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	srcFile, exists := a.files[src]
	if !exists {
		return &uploadkit.PathError{Op: "move", Path: src, Err: uploadkit.ErrNotExist}
	}
	if _, isDir := a.dirs[dst]; isDir {
		return &uploadkit.PathError{Op: "move", Path: dst, Err: uploadkit.ErrIsDir}
	}
	if src == dst {
		return nil
	}

	if existing, ok := a.files[dst]; ok {
		a.size -= int64(len(existing.content))
	}

	// Ensure parent directories exist
	a.ensureParentDirs(dst)

	// Move file (no size change)
	a.files[dst] = srcFile
	srcFile.modTime = time.Now()
	delete(a.files, src)

	return nil
}

// DirExists implements uploadkit.Mover
func (a *Adapter) DirExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, dirExists := a.dirs[path]

	return dirExists, nil
}

// FileExists checks if a file exists
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, fileExists := a.files[path]

	return fileExists, nil
}

// CreateDir creates a directory and its parents
func (a *Adapter) CreateDir(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path = normalizePath(path)

	if !isValidPath(path) {
		return &uploadkit.PathError{Op: "createdir", Path: path, Err: uploadkit.ErrNotAllowed}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.files[path]; exists {
		return &uploadkit.PathError{Op: "createdir", Path: path, Err: uploadkit.ErrExist}
	}

	a.ensureParentDirs(path)
	if _, exists := a.dirs[path]; !exists {
		a.dirs[path] = &memoryDir{modTime: time.Now()}
	}

	return nil
}

// Delete removes a file
func (a *Adapter) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.Lock()
	defer a.mu.Unlock()

	file, exists := a.files[path]
	if !exists {
		return &uploadkit.PathError{Op: "delete", Path: path, Err: uploadkit.ErrNotExist}
	}

	a.size -= int64(len(file.content))
	delete(a.files, path)

	return nil
}

// List returns the sorted paths of the stored files matching a glob pattern
// such as "avatars/*.jpg" or "**.png". An empty pattern matches everything.
func (a *Adapter) List(ctx context.Context, pattern string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var g glob.Glob
	if pattern != "" {
		var err error
		g, err = glob.Compile(normalizePath(pattern), '/')
		if err != nil {
			return nil, &uploadkit.PathError{Op: "list", Path: pattern, Err: err}
		}
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	paths := make([]string, 0, len(a.files))
	for path := range a.files {
		if g == nil || g.Match(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	return paths, nil
}

// Clear removes all files and directories
func (a *Adapter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.files = make(map[string]*memoryFile)
	a.dirs = make(map[string]*memoryDir)
	a.dirs[""] = &memoryDir{modTime: time.Now()}
	a.size = 0
}

// Size returns the current total size of all files
func (a *Adapter) Size() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}

// FileCount returns the number of files stored
func (a *Adapter) FileCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.files)
}

// ensureParentDirs creates all parent directories for a path
func (a *Adapter) ensureParentDirs(path string) {
	dir := filepath.Dir(path)
	for dir != "" && dir != "." && dir != "/" {
		if _, exists := a.dirs[dir]; !exists {
			a.dirs[dir] = &memoryDir{modTime: time.Now()}
		}
		dir = filepath.Dir(dir)
	}
}

// normalizePath normalizes a file path
func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" || path == "." {
		return ""
	}
	path = filepath.ToSlash(filepath.Clean(path))
	return path
}

// isValidPath checks if a path is valid (no directory traversal)
func isValidPath(path string) bool {
	return !strings.Contains(path, "..")
}

// Ensure Adapter implements interfaces
var _ uploadkit.Storage = (*Adapter)(nil)
