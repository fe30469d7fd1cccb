package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gobeaver/uploadkit"
)

// StagingDir is where Stage writes incoming uploads, relative to the root.
const StagingDir = ".uploads"

// Adapter provides a local filesystem implementation of uploadkit.Storage.
// Handles and destinations are paths relative to root; nothing outside root
// can be read or written.
type Adapter struct {
	root string
}

// New creates a new local filesystem adapter
func New(root string) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Ensure the root directory exists
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, err
	}

	return &Adapter{
		root: absRoot,
	}, nil
}

// Root returns the absolute root directory.
func (a *Adapter) Root() string {
	return a.root
}

// resolve maps a handle or destination to its absolute path under root.
func (a *Adapter) resolve(op, path string) (string, error) {
	fullPath := filepath.Join(a.root, filepath.Clean(path))

	// Check if the path is under the root
	if !isPathUnderRoot(a.root, fullPath) {
		return "", &uploadkit.PathError{
			Op:   op,
			Path: path,
			Err:  uploadkit.ErrNotAllowed,
		}
	}
	return fullPath, nil
}

// Stage writes an incoming upload to a fresh handle under StagingDir and
// returns the handle and the number of bytes written.
func (a *Adapter) Stage(ctx context.Context, content io.Reader) (string, int64, error) {
	select {
	case <-ctx.Done():
		return "", 0, ctx.Err()
	default:
	}

	handle := filepath.ToSlash(filepath.Join(StagingDir, uuid.NewString()))
	fullPath, err := a.resolve("stage", handle)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return "", 0, &uploadkit.PathError{Op: "stage", Path: handle, Err: err}
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", 0, &uploadkit.PathError{Op: "stage", Path: handle, Err: err}
	}
	defer f.Close()

	n, err := io.Copy(f, content)
	if err != nil {
		os.Remove(fullPath)
		return "", 0, &uploadkit.PathError{Op: "stage", Path: handle, Err: err}
	}

	return handle, n, nil
}

// ReadAll implements uploadkit.Reader
func (a *Adapter) ReadAll(ctx context.Context, handle string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("read", handle)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &uploadkit.PathError{Op: "read", Path: handle, Err: uploadkit.ErrNotExist}
		}
		return nil, &uploadkit.PathError{Op: "read", Path: handle, Err: err}
	}
	if info.IsDir() {
		return nil, &uploadkit.PathError{Op: "read", Path: handle, Err: uploadkit.ErrIsDir}
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, &uploadkit.PathError{Op: "read", Path: handle, Err: err}
	}
	return data, nil
}

// DirExists implements uploadkit.Mover
func (a *Adapter) DirExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("direxists", path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &uploadkit.PathError{
			Op:   "direxists",
			Path: path,
			Err:  err,
		}
	}

	// Return true only if it's a directory
	return info.IsDir(), nil
}

// FileExists checks if a regular file exists
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	fullPath, err := a.resolve("fileexists", path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &uploadkit.PathError{Op: "fileexists", Path: path, Err: err}
	}

	return !info.IsDir(), nil
}

// CreateDir creates a directory and its parents
func (a *Adapter) CreateDir(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.resolve("createdir", path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return &uploadkit.PathError{Op: "createdir", Path: path, Err: err}
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

	fullPath, err := a.resolve("delete", path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &uploadkit.PathError{Op: "delete", Path: path, Err: uploadkit.ErrNotExist}
		}
		return &uploadkit.PathError{Op: "delete", Path: path, Err: err}
	}
	if info.IsDir() {
		return &uploadkit.PathError{Op: "delete", Path: path, Err: uploadkit.ErrIsDir}
	}

	if err := os.Remove(fullPath); err != nil {
		return &uploadkit.PathError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// Move implements uploadkit.Mover. It renames when possible and falls back
// to copy and delete across devices.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := a.resolve("move", src)
	if err != nil {
		return err
	}
	dstPath, err := a.resolve("move", dst)
	if err != nil {
		return err
	}

	// Check source exists
	info, err := os.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &uploadkit.PathError{Op: "move", Path: src, Err: uploadkit.ErrNotExist}
		}
		return &uploadkit.PathError{Op: "move", Path: src, Err: err}
	}
	if info.IsDir() {
		return &uploadkit.PathError{Op: "move", Path: src, Err: uploadkit.ErrIsDir}
	}

	if dstInfo, err := os.Stat(dstPath); err == nil && dstInfo.IsDir() {
		return &uploadkit.PathError{Op: "move", Path: dst, Err: uploadkit.ErrIsDir}
	}

	// Create destination directory if needed
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return &uploadkit.PathError{Op: "move", Path: dst, Err: err}
	}

	// Try rename first (works if same filesystem)
	if err := os.Rename(srcPath, dstPath); err != nil {
		// If rename fails (cross-device), fall back to copy+delete
		if err := copyFile(srcPath, dstPath, info.Mode()); err != nil {
			return &uploadkit.PathError{Op: "move", Path: dst, Err: err}
		}
		if err := os.Remove(srcPath); err != nil {
			return &uploadkit.PathError{Op: "move", Path: src, Err: err}
		}
	}

	return nil
}

func copyFile(srcPath, dstPath string, mode os.FileMode) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dstPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}

// isPathUnderRoot checks if a path is under the root directory
func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return !filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Ensure Adapter implements interfaces
var _ uploadkit.Storage = (*Adapter)(nil)
