package uploadkit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/rs/zerolog"
)

// Global instance
var (
	defaultService *Service
	defaultOnce    sync.Once
	defaultErr     error
)

// Service binds a storage driver, a resolved policy and a logger together so
// incoming uploads can be validated and stored with one call.
type Service struct {
	cfg     *Config
	storage Storage
	policy  *Policy
	logger  zerolog.Logger
	options []Option
}

// Builder provides a way to create Service instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Service instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Service instance using the builder's prefix
func (b *Builder) New(options ...Option) (*Service, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg, options...)
}

// Init initializes the global service instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultService, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global service, nil before a successful Init.
func Default() *Service {
	return defaultService
}

// NewFromEnv creates a service from the environment with the default prefix.
func NewFromEnv(options ...Option) (*Service, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, options...)
}

// New creates a new service with given config. Options are applied after
// the ones derived from cfg, so they can replace its storage or logger.
func New(cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	storage, err := CreateDriver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	base := []Option{
		WithStorage(storage),
		WithLogger(logger),
	}
	if cfg.Concurrency > 0 {
		base = append(base, WithConcurrency(cfg.Concurrency))
	}

	s := &Service{
		cfg:     cfg,
		storage: storage,
		policy:  cfg.Policy(),
		logger:  logger,
		options: append(base, options...),
	}

	logger.Debug().
		Str("driver", cfg.Driver).
		Float64("max_bytes", s.policy.Size.MaxBytes()).
		Msg("upload service ready")

	return s, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.Driver == "" {
		return errors.New("driver is required")
	}

	if cfg.Driver == "local" && cfg.LocalBasePath == "" {
		return errors.New("local base path is required for local driver")
	}

	if cfg.MinSize < 0 || cfg.MaxSize < 0 {
		return errors.New("size limits must not be negative")
	}
	if cfg.MaxSize < cfg.MinSize {
		return fmt.Errorf("max size %d is below min size %d", cfg.MaxSize, cfg.MinSize)
	}

	if cfg.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}

	return nil
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *Config {
	return s.cfg
}

// Policy returns the resolved policy uploads are validated against.
func (s *Service) Policy() *Policy {
	return s.policy
}

// Storage returns the configured driver.
func (s *Service) Storage() Storage {
	return s.storage
}

// Upload wraps a multi-file batch.
func (s *Service) Upload(batch Batch) *Upload {
	return NewUpload(batch, s.policy, s.options...)
}

// UploadSingle wraps a single-file upload.
func (s *Service) UploadSingle(d Descriptor) *Upload {
	return NewSingleUpload(d, s.policy, s.options...)
}

// Process validates every file in batch and returns the upload together with
// the files that passed.
func (s *Service) Process(ctx context.Context, batch Batch) (*Upload, []*File, error) {
	u := s.Upload(batch)
	valid, err := u.ValidateAll(ctx)
	if err != nil {
		return u, nil, err
	}
	return u, valid, nil
}

// ProcessSingle validates a single-file upload.
func (s *Service) ProcessSingle(ctx context.Context, d Descriptor) (*Upload, []*File, error) {
	u := s.UploadSingle(d)
	valid, err := u.ValidateAll(ctx)
	if err != nil {
		return u, nil, err
	}
	return u, valid, nil
}

// Store moves every valid file into dir under a unique name and returns
// the destinations in file order. It stops at the first storage error.
func (s *Service) Store(ctx context.Context, files []*File, dir string) ([]string, error) {
	dests := make([]string, 0, len(files))
	for _, f := range files {
		if !f.Valid() {
			continue
		}
		dest, err := f.PutUnique(ctx, dir)
		if err != nil {
			return dests, fmt.Errorf("store %s: %w", f.Name, err)
		}
		dests = append(dests, dest)
	}
	return dests, nil
}
