package exif

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value [4]byte
}

func shortValue(v uint16) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return b
}

func longValue(v uint32) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b
}

func asciiValue(s string) [4]byte {
	var b [4]byte
	copy(b[:], s)
	return b
}

func writeIFD(buf *bytes.Buffer, entries []ifdEntry) {
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		_ = binary.Write(buf, binary.LittleEndian, e.tag)
		_ = binary.Write(buf, binary.LittleEndian, e.typ)
		_ = binary.Write(buf, binary.LittleEndian, e.count)
		buf.Write(e.value[:])
	}
	_ = binary.Write(buf, binary.LittleEndian, uint32(0))
}

// buildTIFF returns a little-endian TIFF holding an orientation and a GPS
// sub-directory with the given coordinates.
func buildTIFF(orientation uint16, lat [3]uint32, latRef string, lng [3]uint32, lngRef string) []byte {
	const (
		ifd0Offset = 8
		ifd0Size   = 2 + 2*12 + 4
		gpsOffset  = ifd0Offset + ifd0Size
		gpsSize    = 2 + 4*12 + 4
		latOffset  = gpsOffset + gpsSize
		lngOffset  = latOffset + 24
	)

	buf := &bytes.Buffer{}
	buf.WriteString("II")
	_ = binary.Write(buf, binary.LittleEndian, uint16(42))
	_ = binary.Write(buf, binary.LittleEndian, uint32(ifd0Offset))

	writeIFD(buf, []ifdEntry{
		{tag: 0x0112, typ: 3, count: 1, value: shortValue(orientation)},
		{tag: 0x8825, typ: 4, count: 1, value: longValue(gpsOffset)},
	})
	writeIFD(buf, []ifdEntry{
		{tag: 0x0001, typ: 2, count: 2, value: asciiValue(latRef)},
		{tag: 0x0002, typ: 5, count: 3, value: longValue(latOffset)},
		{tag: 0x0003, typ: 2, count: 2, value: asciiValue(lngRef)},
		{tag: 0x0004, typ: 5, count: 3, value: longValue(lngOffset)},
	})

	for _, coord := range [][3]uint32{lat, lng} {
		for _, v := range coord {
			_ = binary.Write(buf, binary.LittleEndian, v)
			_ = binary.Write(buf, binary.LittleEndian, uint32(1))
		}
	}

	return buf.Bytes()
}

func TestGoexifDecoder_DecodeTags(t *testing.T) {
	data := buildTIFF(6, [3]uint32{40, 26, 46}, "S", [3]uint32{79, 58, 56}, "W")

	tags, err := GoexifDecoder{}.DecodeTags(data)
	if err != nil {
		t.Fatalf("DecodeTags() error = %v", err)
	}

	if got := tags[TagGPSLatitude]; len(got) != 3 || got[0] != "40/1" || got[2] != "46/1" {
		t.Errorf("GPSLatitude = %v", got)
	}
	if ref, _ := tags.First(TagGPSLatitudeRef); ref != "S" {
		t.Errorf("GPSLatitudeRef = %q", ref)
	}

	d := New(tags)
	if got := d.Orientation(); got != "90 rotate right" {
		t.Errorf("Orientation() = %q", got)
	}

	gps, ok := d.GPS()
	if !ok {
		t.Fatal("expected GPS to be available")
	}
	if math.Abs(gps.Latitude-(-40.446111)) > 1e-6 {
		t.Errorf("Latitude = %v", gps.Latitude)
	}
	if math.Abs(gps.Longitude-(-79.982222)) > 1e-6 {
		t.Errorf("Longitude = %v", gps.Longitude)
	}
}

func TestGoexifDecoder_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "short", data: []byte{0xff}},
		{name: "plain text", data: []byte("hello, this is not an image at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (GoexifDecoder{}).DecodeTags(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
