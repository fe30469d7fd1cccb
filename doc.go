// Package uploadkit validates and classifies files received through an
// upload transport, before they are moved to permanent storage.
//
// An upload arrives as one [Descriptor] per file (client name, declared MIME
// type, temporary handle, size and transport error code), or as a
// multi-file [Batch] in parallel-array form. Each file is classified from its
// name alone into an extension, a base name, a coarse [Category] and a
// canonical MIME type, then checked against a [Policy].
//
// # Policies
//
// A policy is built by merging caller [Rules] over [DefaultPolicy]. Every
// section accepts either a field-by-field override or a shorthand:
//
//	policy := uploadkit.ResolvePolicy(uploadkit.DefaultPolicy(), uploadkit.Rules{
//	    Size:       uploadkit.MaxSize(20),                 // 20 MB, default unit
//	    Extensions: uploadkit.AllowList(".jpg", ".png"),   // bare list
//	    Categories: uploadkit.Allow(string(uploadkit.CategoryImage)),
//	})
//
// Size bounds are inclusive. The extension filter compares case-insensitively
// and the category filter compares exactly. Custom checks run last; any
// non-empty error they return is recorded as a failure.
//
// # Validation
//
// Validation never stops at the first failure. Transport, size, extension,
// category and custom failures are collected in that order:
//
//	upload := uploadkit.NewUpload(batch, policy, uploadkit.WithStorage(store))
//	valid, err := upload.ValidateAll(ctx)
//	for _, f := range upload.Files {
//	    if !f.Valid() {
//	        log.Println(f.Name, f.ErrorText())
//	    }
//	}
//
// Files are validated concurrently, bounded by [WithConcurrency].
//
// # Storage and metadata
//
// Byte access and persistence go through the [Reader] and [Mover]
// interfaces. The drivers under driver/local and driver/memory implement
// both and register themselves for [CreateDriver]:
//
//	import _ "github.com/gobeaver/uploadkit/driver/local"
//
//	svc, err := uploadkit.NewFromEnv()
//
// JPEG and TIFF uploads expose their EXIF orientation and GPS position
// through [File.Orientation] and [File.GPS]; see package exif.
//
// # Configuration
//
// [Config] is loaded from the environment with the BEAVER_ prefix by default,
// e.g. BEAVER_UPLOADKIT_MAX_SIZE=20. Use [WithPrefix] for a custom prefix.
package uploadkit
