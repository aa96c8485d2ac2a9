package dv

import "fmt"

// PixelType is the header "mode" code describing how one sample is stored.
type PixelType int32

const (
	PixelUint8        PixelType = 0
	PixelInt16        PixelType = 1
	PixelFloat32      PixelType = 2
	PixelComplexInt16 PixelType = 3
	PixelComplex64    PixelType = 4
	PixelInt16Alt     PixelType = 5
	PixelUint16       PixelType = 6
	PixelInt32        PixelType = 7
)

// PixelKind groups pixel types by numeric interpretation.
type PixelKind uint8

const (
	KindInteger PixelKind = iota + 1
	KindFloat
	KindComplex
)

func (k PixelKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

type pixelInfo struct {
	name string
	size int
	kind PixelKind
}

var pixelTypes = map[PixelType]pixelInfo{
	PixelUint8:        {"UINT8", 1, KindInteger},
	PixelInt16:        {"INT16", 2, KindInteger},
	PixelFloat32:      {"FLOAT32", 4, KindFloat},
	PixelComplexInt16: {"COMPLEX_INT16", 4, KindComplex},
	PixelComplex64:    {"COMPLEX64", 8, KindComplex},
	PixelInt16Alt:     {"INT16_ALT", 2, KindInteger},
	PixelUint16:       {"UINT16", 2, KindInteger},
	PixelInt32:        {"INT32", 4, KindInteger},
}

// Valid reports whether p is one of the known mode codes.
func (p PixelType) Valid() bool {
	_, ok := pixelTypes[p]
	return ok
}

// Size returns the byte width of one sample. Complex widths cover both
// components. Unknown codes are an error, never a zero width.
func (p PixelType) Size() (int, error) {
	info, ok := pixelTypes[p]
	if !ok {
		return 0, fmt.Errorf("%w: mode %d", ErrUnknownPixelType, int32(p))
	}
	return info.size, nil
}

// Kind returns the numeric family of p, or zero for unknown codes.
func (p PixelType) Kind() PixelKind {
	return pixelTypes[p].kind
}

func (p PixelType) String() string {
	if info, ok := pixelTypes[p]; ok {
		return info.name
	}
	return fmt.Sprintf("PixelType(%d)", int32(p))
}
