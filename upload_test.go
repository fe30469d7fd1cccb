package uploadkit

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestBatch(t *testing.T) {
	b := Batch{
		Name:    []string{"a.jpg", "b.pdf", "c.txt"},
		TmpName: []string{"tmp/a", "tmp/b"},
		Size:    []int64{10, 20, 30},
		Error:   []ErrorCode{ErrOK, ErrPartial},
	}

	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}

	d := b.Descriptor(1)
	if d.Name != "b.pdf" || d.TmpName != "tmp/b" || d.Size != 20 || d.Error != ErrPartial {
		t.Errorf("Descriptor(1) = %+v", d)
	}

	d = b.Descriptor(2)
	if d.TmpName != "" || d.Error != ErrOK || d.Type != "" {
		t.Errorf("short arrays must yield zero values, got %+v", d)
	}
}

func TestNewUpload(t *testing.T) {
	batch := Batch{
		Name: []string{"first.jpg", "", "third.png"},
		Size: []int64{1, 2, 3},
	}

	u := NewUpload(batch, nil)

	if u.Len() != 2 {
		t.Fatalf("expected empty names to be skipped, got %d files", u.Len())
	}
	if u.File == nil || u.File.Name != "first.jpg" {
		t.Errorf("expected first file to be first.jpg, got %+v", u.File)
	}
	if u.Files[1].Name != "third.png" || u.Files[1].Size != 3 {
		t.Errorf("unexpected second file %+v", u.Files[1].Descriptor)
	}
	if u.Policy() == nil || u.Files[0].Policy() != u.Policy() {
		t.Error("expected files to share the upload policy")
	}

	var names []string
	u.Each(func(f *File) { names = append(names, f.Name) })
	if len(names) != 2 || names[0] != "first.jpg" {
		t.Errorf("Each visited %v", names)
	}
	u.Each(nil)
}

func TestNewSingleUpload(t *testing.T) {
	u := NewSingleUpload(Descriptor{Name: "a.txt", Size: 1}, nil)
	if u.Len() != 1 || u.File == nil || u.File != u.Files[0] {
		t.Errorf("unexpected single upload %+v", u)
	}

	empty := NewSingleUpload(Descriptor{}, nil)
	if empty.Len() != 0 || empty.File != nil {
		t.Error("expected nameless descriptor to produce an empty upload")
	}
}

func TestUpload_ValidateAll(t *testing.T) {
	var running, peak atomic.Int32

	slow := CheckFunc(func(f *File) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		return nil
	})

	p := ResolvePolicy(DefaultPolicy(), Rules{
		Size:       MaxSize(20),
		Extensions: AllowList(".jpg", ".png", ".txt"),
		Checks:     []Check{slow},
	})

	batch := Batch{
		Name:  []string{"ok.jpg", "huge.png", "virus.exe", "notes.txt", "broken.jpg"},
		Size:  []int64{KB, 25 * MB, KB, 5 * KB, KB},
		Error: []ErrorCode{ErrOK, ErrOK, ErrOK, ErrOK, ErrPartial},
	}

	u := NewUpload(batch, p, WithConcurrency(2))
	valid, err := u.ValidateAll(context.Background())
	if err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}

	if len(valid) != 2 || valid[0].Name != "ok.jpg" || valid[1].Name != "notes.txt" {
		names := make([]string, len(valid))
		for i, f := range valid {
			names[i] = f.Name
		}
		t.Errorf("valid files = %v", names)
	}

	huge := u.Files[1]
	if len(huge.Errors()) != 1 || huge.Errors()[0].Code != ErrSizeFilter {
		t.Errorf("expected exactly one size error for huge.png, got %v", huge.ErrorMessages())
	}
	if u.Files[2].Errors()[0].Code != ErrExtensionFilter {
		t.Errorf("expected extension error for virus.exe, got %v", u.Files[2].ErrorMessages())
	}
	if u.Files[4].Errors()[0].Code != ErrPartial {
		t.Errorf("expected transport error for broken.jpg, got %v", u.Files[4].ErrorMessages())
	}

	if peak.Load() > 2 {
		t.Errorf("expected at most 2 concurrent validations, saw %d", peak.Load())
	}
}

func TestUpload_ValidateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := NewUpload(Batch{Name: []string{"a.txt", "b.txt"}}, nil)
	if _, err := u.ValidateAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestUpload_ValidateAllEmpty(t *testing.T) {
	valid, err := NewUpload(Batch{}, nil).ValidateAll(context.Background())
	if err != nil || len(valid) != 0 {
		t.Errorf("ValidateAll = %v, %v", valid, err)
	}
}
