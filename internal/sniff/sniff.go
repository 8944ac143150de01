// Package sniff classifies uploaded image bytes by magic number.
package sniff

// Format is the detected kind of an uploaded image.
type Format int

const (
	// FormatRaster is any standard raster image (PNG, JPEG, GIF, ...).
	FormatRaster Format = iota
	// FormatDicom is a DICOM object: 128-byte preamble followed by "DICM".
	FormatDicom
)

func (f Format) String() string {
	if f == FormatDicom {
		return "dicom"
	}
	return "raster"
}

// DICOM files carry a 128-byte preamble followed by the 4-byte marker.
const (
	markerOffset = 128
	markerLen    = 4
	minLen       = markerOffset + markerLen
)

const dicomMarker = "DICM"

// Detect inspects the first 132 bytes of data. A buffer shorter than 132
// bytes is a definitive negative, not an error: it is classified as a
// generic raster and left for the raster decoder to accept or reject.
func Detect(data []byte) Format {
	if len(data) < minLen {
		return FormatRaster
	}
	if string(data[markerOffset:markerOffset+markerLen]) == dicomMarker {
		return FormatDicom
	}
	return FormatRaster
}
