package exif

// Orientation is the value of the EXIF Orientation tag.
type Orientation int

// OrientationUnknown is the label for absent or unrecognized values.
const OrientationUnknown = "unknown"

var orientationLabels = map[Orientation]string{
	1: "nothing",
	2: "horizontal flip",
	3: "180 rotate left",
	4: "vertical flip",
	5: "vertical flip + 90 rotate right",
	6: "90 rotate right",
	7: "horizontal flip + 90 rotate right",
	8: "90 rotate left",
}

// String returns the transform needed to display the image upright.
func (o Orientation) String() string {
	if label, ok := orientationLabels[o]; ok {
		return label
	}
	return OrientationUnknown
}

// Valid reports whether o is one of the eight defined orientations.
func (o Orientation) Valid() bool {
	_, ok := orientationLabels[o]
	return ok
}
