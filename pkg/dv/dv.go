// Package dv reads DeltaVision image stacks.
//
// A DeltaVision file is an MRC variant holding a five dimensional stack
// (time × wavelength × Z × Y × X). It starts with a fixed 1024 byte header,
// followed by an optional extended header and then the raw pixel sections.
// Sections are always stored Time-major, then wavelength, then Z, with no
// padding between them. This package never writes files.
package dv

// On-disk layout constants. These never change.
const (
	// HeaderSize is the size of the fixed header at the start of every file.
	HeaderSize = 1024

	// MarkerOffset is where the two byte DVID marker lives (24 * 4).
	MarkerOffset = 96

	// NumLabels is the number of 80 byte title slots in the header.
	NumLabels = 10
	LabelSize = 80
)

// DVID marker bytes as they appear on disk for each byte order.
var (
	markerLittle = [2]byte{0xA0, 0xC0}
	markerBig    = [2]byte{0xC0, 0xA0}
)
