package dv

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Endian is the byte order a file was written with.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

// ByteOrder returns the encoding/binary order matching e.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endian) String() string {
	if e == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// DetectByteOrder classifies a file by the two DVID marker bytes at
// MarkerOffset. It only classifies; header fields are decoded later with the
// result. Any other byte pair, or a file too short to hold the marker, yields
// ErrUnrecognizedFormat.
func DetectByteOrder(r io.ReaderAt) (Endian, error) {
	var id [2]byte
	n, err := r.ReadAt(id[:], MarkerOffset)
	if n < len(id) {
		if err == nil || err == io.EOF {
			return 0, fmt.Errorf("%w: file too short for DVID marker", ErrUnrecognizedFormat)
		}
		return 0, err
	}
	switch id {
	case markerLittle:
		return LittleEndian, nil
	case markerBig:
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("%w: DVID marker %#02x %#02x", ErrUnrecognizedFormat, id[0], id[1])
	}
}
