package dv

import (
	"fmt"
	"math"
)

// DecodeSamples converts raw section bytes of pixel type p, stored in byte
// order e, to float32. Complex samples are reduced to their magnitude.
func DecodeSamples(raw []byte, p PixelType, e Endian) ([]float32, error) {
	size, err := p.Size()
	if err != nil {
		return nil, err
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("dv: %d bytes is not a whole number of %s samples", len(raw), p)
	}
	n := len(raw) / size
	order := e.ByteOrder()
	out := make([]float32, n)

	switch p {
	case PixelUint8:
		for i := 0; i < n; i++ {
			out[i] = float32(raw[i])
		}
	case PixelInt16, PixelInt16Alt:
		for i := 0; i < n; i++ {
			out[i] = float32(int16(order.Uint16(raw[i*2:])))
		}
	case PixelUint16:
		for i := 0; i < n; i++ {
			out[i] = float32(order.Uint16(raw[i*2:]))
		}
	case PixelInt32:
		for i := 0; i < n; i++ {
			out[i] = float32(int32(order.Uint32(raw[i*4:])))
		}
	case PixelFloat32:
		for i := 0; i < n; i++ {
			out[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
	case PixelComplexInt16:
		for i := 0; i < n; i++ {
			re := float64(int16(order.Uint16(raw[i*4:])))
			im := float64(int16(order.Uint16(raw[i*4+2:])))
			out[i] = float32(math.Hypot(re, im))
		}
	case PixelComplex64:
		for i := 0; i < n; i++ {
			re := float64(math.Float32frombits(order.Uint32(raw[i*8:])))
			im := float64(math.Float32frombits(order.Uint32(raw[i*8+4:])))
			out[i] = float32(math.Hypot(re, im))
		}
	}
	return out, nil
}
