package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/gobeaver/uploadkit"
	"github.com/gobeaver/uploadkit/driver/local"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Check files against an upload policy",
	ArgsUsage: "FILE...",
	Flags: []cli.Flag{
		&cli.Float64Flag{Name: "max", Usage: "Maximum size, in --unit"},
		&cli.Float64Flag{Name: "min", Usage: "Minimum size, in --unit"},
		&cli.StringFlag{Name: "unit", Usage: "Size unit (B, KB, MB, GB)", Value: "MB"},
		&cli.StringSliceFlag{Name: "ext", Usage: "Allowed extension, e.g. .jpg (repeatable)"},
		&cli.StringSliceFlag{Name: "deny-ext", Usage: "Denied extension (repeatable)"},
		&cli.StringSliceFlag{Name: "category", Usage: "Allowed category, e.g. image (repeatable)"},
		&cli.StringSliceFlag{Name: "deny-category", Usage: "Denied category (repeatable)"},
		&cli.IntFlag{Name: "concurrency", Usage: "Files validated at once", Value: 4},
		&cli.BoolFlag{Name: "exif", Usage: "Print orientation and GPS position of images"},
	},
	Action: validate,
}

func validate(cCtx *cli.Context) error {
	if cCtx.NArg() == 0 {
		return cli.Exit("at least one file is required", 2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := uploadkit.NewLogger(cCtx.String("log-level"), cCtx.String("log-format"))

	store, err := local.New(string(filepath.Separator))
	if err != nil {
		return err
	}

	batch := batchFromPaths(cCtx.Args().Slice(), logger)
	upload := uploadkit.NewUpload(batch, policyFromFlags(cCtx),
		uploadkit.WithStorage(store),
		uploadkit.WithLogger(logger),
		uploadkit.WithConcurrency(cCtx.Int("concurrency")),
	)

	valid, err := upload.ValidateAll(ctx)
	if err != nil {
		return err
	}

	w := cCtx.App.Writer
	upload.Each(func(f *uploadkit.File) {
		if f.Valid() {
			fmt.Fprintf(w, "OK\t%s\t%s\t%s\t%s\n", f.Name, f.FormatSize(), f.Category, f.MIMEType)
		} else {
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", f.Name, f.ErrorText())
		}
		if cCtx.Bool("exif") && f.HasExif() {
			printExif(ctx, w, f)
		}
	})

	if rejected := upload.Len() - len(valid); rejected > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files rejected", rejected, upload.Len()), 1)
	}
	return nil
}

// batchFromPaths describes local files as if they had just been uploaded.
// Paths that cannot be read are reported with the no-file transport code.
func batchFromPaths(paths []string, logger zerolog.Logger) uploadkit.Batch {
	var batch uploadkit.Batch
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		code := uploadkit.ErrOK
		var size int64

		if err == nil {
			var info os.FileInfo
			info, err = os.Stat(abs)
			if err == nil && info.IsDir() {
				err = fmt.Errorf("%s is a directory", p)
			}
			if err == nil {
				size = info.Size()
			}
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("cannot stat file")
			code = uploadkit.ErrNoFile
		}

		batch.Name = append(batch.Name, filepath.Base(p))
		batch.TmpName = append(batch.TmpName, abs)
		batch.Size = append(batch.Size, size)
		batch.Error = append(batch.Error, code)
		batch.Type = append(batch.Type, uploadkit.MIMETypeForExtension(uploadkit.Extension(p)))
	}
	return batch
}

func policyFromFlags(cCtx *cli.Context) *uploadkit.Policy {
	var rules uploadkit.Rules

	spec := uploadkit.SizeSpec{}
	if cCtx.IsSet("max") {
		spec.Max = uploadkit.Ptr(cCtx.Float64("max"))
	}
	if cCtx.IsSet("min") {
		spec.Min = uploadkit.Ptr(cCtx.Float64("min"))
	}
	if cCtx.IsSet("unit") {
		spec.Unit = uploadkit.Ptr(uploadkit.ParseUnit(cCtx.String("unit")))
	}
	if spec.Max != nil || spec.Min != nil || spec.Unit != nil {
		rules.Size = uploadkit.SizeFields(spec)
	}

	if allow, deny := cCtx.StringSlice("ext"), cCtx.StringSlice("deny-ext"); len(allow) > 0 {
		rules.Extensions = uploadkit.FilterFields(uploadkit.FilterSpec{Allow: allow, Deny: deny})
	} else if len(deny) > 0 {
		rules.Checks = append(rules.Checks, uploadkit.DenyExtensions(deny...))
	}

	if allow, deny := cCtx.StringSlice("category"), cCtx.StringSlice("deny-category"); len(allow) > 0 {
		rules.Categories = uploadkit.FilterFields(uploadkit.FilterSpec{Allow: allow, Deny: deny})
	} else if len(deny) > 0 {
		rules.Checks = append(rules.Checks, uploadkit.DenyCategories(deny...))
	}

	return uploadkit.ResolvePolicy(uploadkit.DefaultPolicy(), rules)
}

func printExif(ctx context.Context, w io.Writer, f *uploadkit.File) {
	if f.LoadExif(ctx) == nil {
		fmt.Fprintf(w, "\texif: unavailable\n")
		return
	}
	fmt.Fprintf(w, "\torientation: %s\n", f.Orientation())
	if gps, ok := f.GPS(); ok {
		fmt.Fprintf(w, "\tgps: %.6f, %.6f %s\n", gps.Latitude, gps.Longitude, gps.Timestamp)
	}
}
