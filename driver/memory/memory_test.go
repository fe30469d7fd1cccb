package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/gobeaver/uploadkit"
)

func TestNew(t *testing.T) {
	t.Run("creates adapter with default config", func(t *testing.T) {
		a := New()
		if a == nil {
			t.Fatal("expected adapter to be created")
		}
		if a.maxSize != 0 {
			t.Errorf("expected maxSize=0, got %d", a.maxSize)
		}
	})

	t.Run("creates adapter with max size", func(t *testing.T) {
		a := New(Config{MaxSize: 1024})
		if a.maxSize != 1024 {
			t.Errorf("expected maxSize=1024, got %d", a.maxSize)
		}
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("stages upload", func(t *testing.T) {
		a := New()
		if err := a.Add("tmp/php1", []byte("hello world")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := a.ReadAll(ctx, "tmp/php1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "hello world" {
			t.Errorf("expected 'hello world', got %q", data)
		}
		if a.Size() != 11 {
			t.Errorf("expected size=11, got %d", a.Size())
		}

		exists, _ := a.DirExists(ctx, "tmp")
		if !exists {
			t.Error("expected parent directory to be created")
		}
	})

	t.Run("replaces content and tracks size", func(t *testing.T) {
		a := New()
		_ = a.Add("x", []byte("12345"))
		_ = a.Add("x", []byte("12"))
		if a.Size() != 2 {
			t.Errorf("expected size=2, got %d", a.Size())
		}
	})

	t.Run("fails on path traversal", func(t *testing.T) {
		a := New()
		err := a.Add("../etc/passwd", []byte("malicious"))
		if !uploadkit.IsPermission(err) {
			t.Errorf("expected permission error, got: %v", err)
		}
	})

	t.Run("respects max size limit", func(t *testing.T) {
		a := New(Config{MaxSize: 10})
		err := a.Add("large", []byte("this is too large"))
		if !errors.Is(err, uploadkit.ErrInvalidSize) {
			t.Errorf("expected size error, got: %v", err)
		}
	})
}

func TestReadAll(t *testing.T) {
	ctx := context.Background()
	a := New()
	_ = a.Add("f", []byte("abc"))

	t.Run("returns a copy", func(t *testing.T) {
		data, _ := a.ReadAll(ctx, "f")
		data[0] = 'z'
		again, _ := a.ReadAll(ctx, "f")
		if string(again) != "abc" {
			t.Errorf("stored content was modified: %q", again)
		}
	})

	t.Run("missing handle", func(t *testing.T) {
		_, err := a.ReadAll(ctx, "missing")
		if !uploadkit.IsNotExist(err) {
			t.Errorf("expected not exist error, got: %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := a.ReadAll(cctx, "f"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got: %v", err)
		}
	})
}

func TestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("moves file", func(t *testing.T) {
		a := New()
		_ = a.Add("tmp/abc", []byte("data"))

		if err := a.Move(ctx, "tmp/abc", "uploads/photo.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if exists, _ := a.FileExists(ctx, "tmp/abc"); exists {
			t.Error("expected source to be gone")
		}
		data, err := a.ReadAll(ctx, "uploads/photo.jpg")
		if err != nil || string(data) != "data" {
			t.Errorf("unexpected destination content %q, err %v", data, err)
		}
		if a.Size() != 4 {
			t.Errorf("expected size=4, got %d", a.Size())
		}
	})

	t.Run("replaces destination", func(t *testing.T) {
		a := New()
		_ = a.Add("src", []byte("new"))
		_ = a.Add("dst", []byte("old content"))

		if err := a.Move(ctx, "src", "dst"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Size() != 3 {
			t.Errorf("expected size=3, got %d", a.Size())
		}
		if a.FileCount() != 1 {
			t.Errorf("expected 1 file, got %d", a.FileCount())
		}
	})

	t.Run("missing source", func(t *testing.T) {
		a := New()
		if err := a.Move(ctx, "nope", "dst"); !uploadkit.IsNotExist(err) {
			t.Errorf("expected not exist error, got: %v", err)
		}
	})

	t.Run("destination is a directory", func(t *testing.T) {
		a := New()
		_ = a.Add("src", []byte("x"))
		_ = a.CreateDir(ctx, "uploads")
		if err := a.Move(ctx, "src", "uploads"); !errors.Is(err, uploadkit.ErrIsDir) {
			t.Errorf("expected is-dir error, got: %v", err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		a := New()
		_ = a.Add("src", []byte("x"))
		if err := a.Move(ctx, "src", "../escape"); !uploadkit.IsPermission(err) {
			t.Errorf("expected permission error, got: %v", err)
		}
	})
}

func TestDirectories(t *testing.T) {
	ctx := context.Background()
	a := New()

	for _, p := range []string{"", "/"} {
		if ok, _ := a.DirExists(ctx, p); !ok {
			t.Errorf("expected root %q to exist", p)
		}
	}

	if err := a.CreateDir(ctx, "a/b/c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []string{"a", "a/b", "/a/b/c"} {
		if ok, _ := a.DirExists(ctx, p); !ok {
			t.Errorf("expected %q to exist", p)
		}
	}

	_ = a.Add("file", []byte("x"))
	if err := a.CreateDir(ctx, "file"); !uploadkit.IsExist(err) {
		t.Errorf("expected exist error, got: %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	a := New()
	_ = a.Add("f", []byte("abc"))

	if err := a.Delete(ctx, "f"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Size() != 0 {
		t.Errorf("expected size=0, got %d", a.Size())
	}
	if err := a.Delete(ctx, "f"); !uploadkit.IsNotExist(err) {
		t.Errorf("expected not exist error, got: %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	a := New()
	for _, p := range []string{"avatars/a.jpg", "avatars/b.png", "avatars/2024/c.jpg", "doc.pdf"} {
		_ = a.Add(p, []byte("x"))
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"avatars/2024/c.jpg", "avatars/a.jpg", "avatars/b.png", "doc.pdf"}},
		{"avatars/*.jpg", []string{"avatars/a.jpg"}},
		{"avatars/**.jpg", []string{"avatars/2024/c.jpg", "avatars/a.jpg"}},
		{"*.pdf", []string{"doc.pdf"}},
		{"*.gif", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := a.List(ctx, tt.pattern)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	a := New()
	_ = a.Add("a/b", []byte("xyz"))
	a.Clear()

	if a.FileCount() != 0 || a.Size() != 0 {
		t.Errorf("expected empty adapter, got %d files, %d bytes", a.FileCount(), a.Size())
	}
	if ok, _ := a.DirExists(context.Background(), "a"); ok {
		t.Error("expected directories to be cleared")
	}
}

func TestRegistered(t *testing.T) {
	s, err := uploadkit.CreateDriver(&uploadkit.Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*Adapter); !ok {
		t.Errorf("expected *Adapter, got %T", s)
	}
}
