package uploadkit

import (
	"context"
)

// ============================================================================
// Storage collaborators
// ============================================================================
// The transport layer leaves each upload's bytes behind an opaque temporary
// handle. uploadkit never touches that storage directly; it goes through
// these interfaces, implemented by the drivers under driver/.

// Reader gives access to the bytes behind a temporary handle.
type Reader interface {
	// ReadAll reads the whole upload into memory.
	ReadAll(ctx context.Context, handle string) ([]byte, error)
}

// Mover moves uploads to their permanent location.
type Mover interface {
	// Move relocates the bytes behind handle to dest.
	Move(ctx context.Context, handle, dest string) error

	// DirExists checks if a directory exists at path.
	DirExists(ctx context.Context, path string) (bool, error)
}

// Storage provides both byte access and persistence.
type Storage interface {
	Reader
	Mover
}
