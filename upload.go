package uploadkit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch is a multi-file upload in parallel-array form: entry i is made of
// Name[i], Type[i], TmpName[i], Error[i] and Size[i]. Short arrays yield
// zero values.
type Batch struct {
	Name    []string
	Type    []string
	TmpName []string
	Error   []ErrorCode
	Size    []int64
}

// Len returns the number of entries in the batch.
func (b Batch) Len() int {
	n := len(b.Name)
	for _, l := range []int{len(b.Type), len(b.TmpName), len(b.Error), len(b.Size)} {
		n = max(n, l)
	}
	return n
}

// Descriptor returns entry i.
func (b Batch) Descriptor(i int) Descriptor {
	return Descriptor{
		Name:    at(b.Name, i),
		Type:    at(b.Type, i),
		TmpName: at(b.TmpName, i),
		Error:   at(b.Error, i),
		Size:    at(b.Size, i),
	}
}

func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

// Upload fans an upload out into independent files sharing one policy.
type Upload struct {
	// Files holds every file in upload order
	Files []*File

	// File is the first file, nil for an empty upload
	File *File

	policy *Policy
	opts   *Options
}

// NewUpload creates an upload from a multi-file batch. Entries without a
// name are skipped.
func NewUpload(batch Batch, policy *Policy, options ...Option) *Upload {
	u := newUpload(policy, options...)
	for i := 0; i < batch.Len(); i++ {
		d := batch.Descriptor(i)
		if d.Name == "" {
			continue
		}
		u.add(d)
	}
	return u
}

// NewSingleUpload creates an upload holding d, or nothing when d has no
// name.
func NewSingleUpload(d Descriptor, policy *Policy, options ...Option) *Upload {
	u := newUpload(policy, options...)
	if d.Name != "" {
		u.add(d)
	}
	return u
}

func newUpload(policy *Policy, options ...Option) *Upload {
	if policy == nil {
		policy = ResolvePolicy(DefaultPolicy(), Rules{})
	}
	return &Upload{
		policy: policy,
		opts:   processOptions(options...),
	}
}

func (u *Upload) add(d Descriptor) {
	f := newFile(d, u.policy, u.opts)
	u.Files = append(u.Files, f)
	if u.File == nil {
		u.File = f
	}
}

// Policy returns the policy shared by every file.
func (u *Upload) Policy() *Policy {
	return u.policy
}

// Len returns the number of files.
func (u *Upload) Len() int {
	return len(u.Files)
}

// Each calls fn for every file in order.
func (u *Upload) Each(fn func(f *File)) {
	if fn == nil {
		return
	}
	for _, f := range u.Files {
		fn(f)
	}
}

// ValidateAll validates every file, up to Options.Concurrency at a time,
// and returns the files that passed. A failing file never stops its
// siblings; the only error is ctx's when it ends before all files ran.
func (u *Upload) ValidateAll(ctx context.Context) ([]*File, error) {
	results := make([]bool, len(u.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opts.Concurrency)

	for i, f := range u.Files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = f.Validate()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var valid []*File
	for i, f := range u.Files {
		if results[i] {
			valid = append(valid, f)
			continue
		}
		u.opts.Logger.Info().
			Str("file", f.Name).
			Str("errors", f.ErrorText()).
			Msg("upload rejected")
	}

	u.opts.Logger.Debug().
		Int("files", len(u.Files)).
		Int("valid", len(valid)).
		Msg("upload validated")

	return valid, nil
}
