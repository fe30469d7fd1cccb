package uploadkit

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/gobeaver/uploadkit/exif"
)

// Option represents a configuration option
type Option func(*Options)

// Options holds the collaborators and knobs shared by the files of an upload.
type Options struct {
	// Reader gives access to temporary upload bytes (contents, checksums, EXIF)
	Reader Reader

	// Mover persists uploads (Put, PutUnique)
	Mover Mover

	// TagDecoder parses image metadata; nil disables EXIF queries
	TagDecoder exif.TagDecoder

	// Logger receives debug and warning events
	Logger zerolog.Logger

	// Concurrency bounds the number of files validated at once by ValidateAll
	Concurrency int
}

func defaultOptions() *Options {
	return &Options{
		TagDecoder:  exif.GoexifDecoder{},
		Logger:      zerolog.Nop(),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

func processOptions(options ...Option) *Options {
	opts := defaultOptions()
	for _, option := range options {
		option(opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return opts
}

// WithStorage uses s for both byte access and persistence
func WithStorage(s Storage) Option {
	return func(o *Options) {
		o.Reader = s
		o.Mover = s
	}
}

// WithReader sets the byte-access collaborator
func WithReader(r Reader) Option {
	return func(o *Options) {
		o.Reader = r
	}
}

// WithMover sets the persistence collaborator
func WithMover(m Mover) Option {
	return func(o *Options) {
		o.Mover = m
	}
}

// WithTagDecoder sets the EXIF tag decoder
func WithTagDecoder(td exif.TagDecoder) Option {
	return func(o *Options) {
		o.TagDecoder = td
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithConcurrency bounds parallel validation in ValidateAll
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}
