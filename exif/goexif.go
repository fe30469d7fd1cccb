package exif

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

var ErrNoTags = errors.New("no exif tags found")

// GoexifDecoder reads JPEG and TIFF metadata with github.com/rwcarlsen/goexif.
type GoexifDecoder struct{}

// DecodeTags implements TagDecoder. Non-critical parse errors, such as a
// damaged GPS sub-directory, still yield the tags that could be read.
func (GoexifDecoder) DecodeTags(data []byte) (Tags, error) {
	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	w := &tagWalker{tags: make(Tags)}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("walk exif: %w", err)
	}
	if len(w.tags) == 0 {
		return nil, ErrNoTags
	}
	return w.tags, nil
}

type tagWalker struct {
	tags Tags
}

// Walk implements goexif's Walker. Tags with unreadable values are skipped.
func (w *tagWalker) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	values, ok := tagValues(tag)
	if ok {
		w.tags[string(name)] = values
	}
	return nil
}

func tagValues(tag *tiff.Tag) ([]string, bool) {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil, false
		}
		return []string{strings.TrimRight(s, "\x00")}, true

	case tiff.RatVal:
		out := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return nil, false
			}
			out = append(out, strconv.FormatInt(num, 10)+"/"+strconv.FormatInt(den, 10))
		}
		return out, true

	case tiff.IntVal:
		out := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return nil, false
			}
			out = append(out, strconv.FormatInt(v, 10))
		}
		return out, true

	case tiff.FloatVal:
		out := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Float(i)
			if err != nil {
				return nil, false
			}
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		}
		return out, true
	}

	return nil, false
}
