package memory

import "github.com/gobeaver/uploadkit"

func init() {
	uploadkit.RegisterDriver("memory", func(cfg *uploadkit.Config) (uploadkit.Storage, error) {
		return New(), nil
	})
}
