package dv

import (
	"errors"
	"fmt"
)

var (
	ErrOpen               = errors.New("dv: cannot open file")
	ErrUnrecognizedFormat = errors.New("dv: not a recognized DV file")
	ErrTruncated          = errors.New("dv: truncated header")
	ErrShortRead          = errors.New("dv: short section read")
	ErrClosed             = errors.New("dv: file is closed")
	ErrIndexOutOfRange    = errors.New("dv: index out of range")
	ErrUnknownPixelType   = errors.New("dv: unknown pixel type")
	ErrBufferTooSmall     = errors.New("dv: buffer smaller than section")
)

// Axis names one of the addressable stack dimensions.
type Axis string

const (
	AxisTime       Axis = "Time"
	AxisWavelength Axis = "Wavelength"
	AxisSection    Axis = "Section"
)

// IndexError reports a coordinate outside the extent declared by the header.
type IndexError struct {
	Axis  Axis
	Index int
	Limit int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dv: %s index %d out of range [0,%d)", e.Axis, e.Index, e.Limit)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
