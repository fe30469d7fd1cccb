package local

import "github.com/gobeaver/uploadkit"

func init() {
	uploadkit.RegisterDriver("local", func(cfg *uploadkit.Config) (uploadkit.Storage, error) {
		return New(cfg.LocalBasePath)
	})
}
