// Package exif decodes the parts of embedded image metadata that uploadkit
// exposes: GPS position and orientation.
//
// Parsing the image container is delegated to a [TagDecoder], which turns
// raw file bytes into a flat [Tags] mapping. [GoexifDecoder] is the default
// implementation. A [Decoder] built over that mapping answers queries and
// is safe to use when nil: every query then reports the value as
// unavailable.
//
//	tags, err := exif.GoexifDecoder{}.DecodeTags(data)
//	if err == nil {
//	    d := exif.New(tags)
//	    if gps, ok := d.GPS(); ok {
//	        fmt.Println(gps.Latitude, gps.Longitude)
//	    }
//	    fmt.Println(d.Orientation())
//	}
package exif
