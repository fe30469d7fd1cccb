package exif

import (
	"strconv"
	"strings"
)

// Tag names read by Decoder.
const (
	TagOrientation      = "Orientation"
	TagGPSLatitude      = "GPSLatitude"
	TagGPSLatitudeRef   = "GPSLatitudeRef"
	TagGPSLongitude     = "GPSLongitude"
	TagGPSLongitudeRef  = "GPSLongitudeRef"
	TagDateTimeOriginal = "DateTimeOriginal"
	TagDateTime         = "DateTime"
)

// Tags maps a tag name to its components in textual form. Rationals are
// "num/den", integers are decimal and strings are kept as is.
type Tags map[string][]string

// First returns the first component of tag.
func (t Tags) First(tag string) (string, bool) {
	v, ok := t[tag]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// TagDecoder parses an image container into its tag mapping.
type TagDecoder interface {
	DecodeTags(data []byte) (Tags, error)
}

// TagDecoderFunc adapts a function to the TagDecoder interface.
type TagDecoderFunc func(data []byte) (Tags, error)

// DecodeTags implements TagDecoder
func (fn TagDecoderFunc) DecodeTags(data []byte) (Tags, error) { return fn(data) }

// GPS is a decoded position.
type GPS struct {
	Latitude  float64
	Longitude float64

	// Timestamp is DateTimeOriginal, else DateTime, else empty.
	Timestamp string
}

// Decoder answers metadata queries over a tag mapping. A nil Decoder is
// valid and reports everything as unavailable.
type Decoder struct {
	tags Tags
}

// New creates a Decoder over tags.
func New(tags Tags) *Decoder {
	return &Decoder{tags: tags}
}

// Decode runs td over data. It returns nil when no tags could be read.
func Decode(td TagDecoder, data []byte) (*Decoder, error) {
	tags, err := td.DecodeTags(data)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		return nil, ErrNoTags
	}
	return New(tags), nil
}

// Tags returns the raw mapping, or nil for a nil Decoder.
func (d *Decoder) Tags() Tags {
	if d == nil {
		return nil
	}
	return d.tags
}

// OrientationValue returns the raw Orientation tag.
func (d *Decoder) OrientationValue() (Orientation, bool) {
	if d == nil {
		return 0, false
	}
	raw, ok := d.tags.First(TagOrientation)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return Orientation(v), true
}

// Orientation returns the orientation label, "unknown" when absent.
func (d *Decoder) Orientation() string {
	o, ok := d.OrientationValue()
	if !ok {
		return OrientationUnknown
	}
	return o.String()
}

// GPS returns the decoded position. It reports false when either coordinate
// is missing or cannot be converted.
func (d *Decoder) GPS() (GPS, bool) {
	if d == nil {
		return GPS{}, false
	}

	lat, ok := d.tags[TagGPSLatitude]
	if !ok {
		return GPS{}, false
	}
	lng, ok := d.tags[TagGPSLongitude]
	if !ok {
		return GPS{}, false
	}

	latRef, _ := d.tags.First(TagGPSLatitudeRef)
	lngRef, _ := d.tags.First(TagGPSLongitudeRef)

	latitude, err := ToDecimal(lat, latRef)
	if err != nil {
		return GPS{}, false
	}
	longitude, err := ToDecimal(lng, lngRef)
	if err != nil {
		return GPS{}, false
	}

	return GPS{
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: d.timestamp(),
	}, true
}

func (d *Decoder) timestamp() string {
	if ts, ok := d.tags.First(TagDateTimeOriginal); ok {
		return ts
	}
	if ts, ok := d.tags.First(TagDateTime); ok {
		return ts
	}
	return ""
}
