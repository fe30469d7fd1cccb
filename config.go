package uploadkit

import (
	"strings"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Storage driver to use (local, memory)
	Driver string `env:"UPLOADKIT_DRIVER,default:local"`

	// Local driver configuration
	LocalBasePath string `env:"UPLOADKIT_LOCAL_BASE_PATH,default:./uploads"`

	// Size policy
	MaxSize  int64  `env:"UPLOADKIT_MAX_SIZE,default:200"`
	MinSize  int64  `env:"UPLOADKIT_MIN_SIZE,default:0"`
	SizeUnit string `env:"UPLOADKIT_SIZE_UNIT,default:MB"`

	// Extension and category filters
	AllowedExtensions string `env:"UPLOADKIT_ALLOWED_EXTENSIONS"` // comma-separated
	BlockedExtensions string `env:"UPLOADKIT_BLOCKED_EXTENSIONS"` // comma-separated
	AllowedCategories string `env:"UPLOADKIT_ALLOWED_CATEGORIES"` // comma-separated
	BlockedCategories string `env:"UPLOADKIT_BLOCKED_CATEGORIES"` // comma-separated

	// Validation workers per upload
	Concurrency int `env:"UPLOADKIT_CONCURRENCY,default:4"`

	// Logging
	LogLevel  string `env:"UPLOADKIT_LOG_LEVEL,default:info"`
	LogFormat string `env:"UPLOADKIT_LOG_FORMAT,default:json"` // json or console
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rules converts the configured policy into merge overrides. Filters left
// empty in the environment stay unconfigured; a block list without an allow
// list becomes a deny check.
func (c *Config) Rules() Rules {
	unit := ParseUnit(c.SizeUnit)
	rules := Rules{
		Size: SizeFields(SizeSpec{
			Min:  Ptr(float64(c.MinSize)),
			Max:  Ptr(float64(c.MaxSize)),
			Unit: &unit,
		}),
	}

	allowExt, denyExt := splitList(c.AllowedExtensions), splitList(c.BlockedExtensions)
	switch {
	case allowExt != nil:
		rules.Extensions = FilterFields(FilterSpec{Allow: allowExt, Deny: denyExt})
	case denyExt != nil:
		rules.Checks = append(rules.Checks, DenyExtensions(denyExt...))
	}

	allowCat, denyCat := splitList(c.AllowedCategories), splitList(c.BlockedCategories)
	switch {
	case allowCat != nil:
		rules.Categories = FilterFields(FilterSpec{Allow: allowCat, Deny: denyCat})
	case denyCat != nil:
		rules.Checks = append(rules.Checks, DenyCategories(denyCat...))
	}

	return rules
}

// Policy resolves the configured rules over DefaultPolicy.
func (c *Config) Policy() *Policy {
	return ResolvePolicy(DefaultPolicy(), c.Rules())
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
