package uploadkit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gobeaver/uploadkit/exif"
)

// Descriptor is one uploaded item as handed over by the transport layer.
type Descriptor struct {
	// Name is the client-side file name
	Name string

	// Type is the client-declared MIME type; informational only
	Type string

	// TmpName is the opaque handle of the temporary bytes
	TmpName string

	// Size is the upload size in bytes
	Size int64

	// Error is the transport error code, ErrOK when the transfer succeeded
	Error ErrorCode
}

// File is a single upload together with its name-derived classification and
// the failures recorded by Validate.
type File struct {
	Descriptor
	Info

	policy *Policy
	opts   *Options
	errors []*ValidationError

	exifOnce sync.Once
	exif     *exif.Decoder
}

// NewFile classifies d. A nil policy means DefaultPolicy.
func NewFile(d Descriptor, policy *Policy, options ...Option) *File {
	return newFile(d, policy, processOptions(options...))
}

func newFile(d Descriptor, policy *Policy, opts *Options) *File {
	if policy == nil {
		policy = ResolvePolicy(DefaultPolicy(), Rules{})
	}
	if d.Size < 0 {
		d.Size = 0
	}
	return &File{
		Descriptor: d,
		Info:       Classify(d.Name),
		policy:     policy,
		opts:       opts,
	}
}

// Policy returns the policy the file is validated against.
func (f *File) Policy() *Policy {
	return f.policy
}

// Validate runs the policy against the file and records every failure.
// Failures accumulate across calls, so call it once per file.
func (f *File) Validate() bool {
	outcome := Validate(f, f.policy)
	f.errors = append(f.errors, outcome.Errors...)

	if !outcome.Valid() {
		f.opts.Logger.Debug().
			Str("file", f.Name).
			Strs("errors", outcome.Messages()).
			Msg("file failed validation")
	}
	return len(f.errors) == 0
}

// Valid reports whether no failure has been recorded.
func (f *File) Valid() bool {
	return len(f.errors) == 0
}

// Errors returns the recorded failures in detection order.
func (f *File) Errors() []*ValidationError {
	out := make([]*ValidationError, len(f.errors))
	copy(out, f.errors)
	return out
}

// ErrorMessages returns the recorded failure messages in detection order.
func (f *File) ErrorMessages() []string {
	return Outcome{Errors: f.errors}.Messages()
}

// ErrorText joins the failure messages with ". ".
func (f *File) ErrorText() string {
	return strings.Join(f.ErrorMessages(), ". ")
}

// Err returns all recorded failures as one error, nil when valid.
func (f *File) Err() error {
	return Outcome{Errors: f.errors}.Err()
}

// Is reports whether the file belongs to category.
func (f *File) Is(category Category) bool {
	return f.Category == category
}

// FormatSize renders the size for humans, e.g. "1.50 MB" or "1 byte".
func (f *File) FormatSize() string {
	return FormatSize(f.Size)
}

// FormatSize renders bytes for humans with two decimals above 1 KB.
func FormatSize(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	case bytes > 1:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes == 1:
		return "1 byte"
	default:
		return "0 bytes"
	}
}

// ============================================================================
// Byte access
// ============================================================================

// Contents reads the upload's temporary bytes.
func (f *File) Contents(ctx context.Context) ([]byte, error) {
	if f.opts.Reader == nil {
		return nil, ErrNoStorage
	}
	if f.TmpName == "" {
		return nil, ErrNoHandle
	}
	return f.opts.Reader.ReadAll(ctx, f.TmpName)
}

// Base64 returns the upload's bytes, standard base64 encoded.
func (f *File) Base64(ctx context.Context) (string, error) {
	data, err := f.Contents(ctx)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Checksum hashes the upload's bytes with algorithm.
func (f *File) Checksum(ctx context.Context, algorithm ChecksumAlgorithm) (string, error) {
	data, err := f.Contents(ctx)
	if err != nil {
		return "", err
	}
	return CalculateChecksumBytes(data, algorithm)
}

// ============================================================================
// Persistence
// ============================================================================

// Put moves the upload to dest. When dest is an existing directory the file
// is stored inside it as filename, or under its own name when filename is
// empty.
func (f *File) Put(ctx context.Context, dest, filename string) error {
	if f.opts.Mover == nil {
		return ErrNoStorage
	}
	if f.TmpName == "" {
		return ErrNoHandle
	}

	isDir, err := f.opts.Mover.DirExists(ctx, dest)
	if err != nil {
		return err
	}
	if isDir {
		if filename == "" {
			filename = baseName(f.Name, "")
		}
		dest = path.Join(dest, filename)
	}

	if err := f.opts.Mover.Move(ctx, f.TmpName, dest); err != nil {
		return err
	}

	f.opts.Logger.Debug().Str("file", f.Name).Str("dest", dest).Msg("upload stored")
	return nil
}

// PutUnique stores the upload inside dir under a random name that keeps the
// lower-cased extension, and returns the destination path.
func (f *File) PutUnique(ctx context.Context, dir string) (string, error) {
	dest := path.Join(dir, uuid.NewString()+strings.ToLower(f.Extension))
	if err := f.Put(ctx, dest, ""); err != nil {
		return "", err
	}
	return dest, nil
}

// ============================================================================
// Image metadata
// ============================================================================

var exifExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
}

// HasExif reports whether the extension is one EXIF is read from.
func (f *File) HasExif() bool {
	return exifExtensions[strings.ToLower(f.Extension)]
}

// LoadExif decodes the file's metadata on first use. It returns nil when the
// file is not an EXIF image or its metadata cannot be read.
func (f *File) LoadExif(ctx context.Context) *exif.Decoder {
	f.exifOnce.Do(func() {
		if !f.HasExif() || f.opts.TagDecoder == nil {
			return
		}

		data, err := f.Contents(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoStorage) {
				f.opts.Logger.Warn().Err(err).Str("file", f.Name).Msg("cannot read upload for exif")
			}
			return
		}

		d, err := exif.Decode(f.opts.TagDecoder, data)
		if err != nil {
			f.opts.Logger.Debug().Err(err).Str("file", f.Name).Msg("exif unavailable")
			return
		}
		f.exif = d
	})
	return f.exif
}

// Exif returns the raw metadata tags.
func (f *File) Exif() (exif.Tags, bool) {
	tags := f.LoadExif(context.Background()).Tags()
	return tags, tags != nil
}

// GPS returns the position the image was taken at.
func (f *File) GPS() (exif.GPS, bool) {
	return f.LoadExif(context.Background()).GPS()
}

// Orientation returns the orientation label, "unknown" when unavailable.
func (f *File) Orientation() string {
	return f.LoadExif(context.Background()).Orientation()
}
