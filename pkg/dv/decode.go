package dv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// fieldReader decodes fixed-offset fields from a header buffer.
type fieldReader struct {
	b     []byte
	order binary.ByteOrder
}

func (r fieldReader) i16(off int) int16 { return int16(r.order.Uint16(r.b[off:])) }
func (r fieldReader) i32(off int) int32 { return int32(r.order.Uint32(r.b[off:])) }
func (r fieldReader) f32(off int) float32 {
	return math.Float32frombits(r.order.Uint32(r.b[off:]))
}

// DecodeHeader decodes a header from raw, which must hold at least
// HeaderSize bytes, using byte order e.
func DecodeHeader(raw []byte, e Endian) (Header, error) {
	if len(raw) < HeaderSize {
		return Header{}, fmt.Errorf("%w: have %d of %d bytes", ErrTruncated, len(raw), HeaderSize)
	}
	r := fieldReader{b: raw[:HeaderSize], order: e.ByteOrder()}

	h := Header{
		NX:            r.i32(OffNX),
		NY:            r.i32(OffNY),
		NZ:            r.i32(OffNZ),
		Mode:          PixelType(r.i32(OffMode)),
		NXStart:       r.i32(OffNXStart),
		NYStart:       r.i32(OffNYStart),
		NZStart:       r.i32(OffNZStart),
		MX:            r.i32(OffMX),
		MY:            r.i32(OffMY),
		MZ:            r.i32(OffMZ),
		XLen:          r.f32(OffXLen),
		YLen:          r.f32(OffYLen),
		ZLen:          r.f32(OffZLen),
		Alpha:         r.f32(OffAlpha),
		Beta:          r.f32(OffBeta),
		Gamma:         r.f32(OffGamma),
		MapC:          r.i32(OffMapC),
		MapR:          r.i32(OffMapR),
		MapS:          r.i32(OffMapS),
		Min:           r.f32(OffMin),
		Max:           r.f32(OffMax),
		Mean:          r.f32(OffMean),
		SpaceGroup:    r.i32(OffSpaceGroup),
		ExtHeaderSize: r.i32(OffExtHeader),
		DVID:          r.i16(OffDVID),
		Blank:         r.i16(OffBlank),
		TimeStart:     r.i32(OffTimeStart),
		NInt:          r.i16(OffNInt),
		NReal:         r.i16(OffNReal),
		NRes:          r.i16(OffNRes),
		ZFactor:       r.i16(OffZFactor),
		Min2:          r.f32(OffMin2),
		Max2:          r.f32(OffMin2 + 4),
		Min3:          r.f32(OffMin2 + 8),
		Max3:          r.f32(OffMin2 + 12),
		Min4:          r.f32(OffMin2 + 16),
		Max4:          r.f32(OffMin2 + 20),
		FileType:      r.i16(OffFileType),
		Lens:          r.i16(OffLens),
		N1:            r.i16(OffN1),
		N2:            r.i16(OffN2),
		V1:            r.i16(OffV1),
		V2:            r.i16(OffV2),
		Min5:          r.f32(OffMin5),
		Max5:          r.f32(OffMax5),
		NumTimes:      r.i16(OffNumTimes),
		Interleaved:   r.i16(OffInterleaved),
		TiltX:         r.f32(OffTiltX),
		TiltY:         r.f32(OffTiltY),
		TiltZ:         r.f32(OffTiltZ),
		NumWaves:      r.i16(OffNumWaves),
		ZOrigin:       r.f32(OffZOrigin),
		XOrigin:       r.f32(OffXOrigin),
		YOrigin:       r.f32(OffYOrigin),
		NLabels:       r.i32(OffNLabels),
	}
	copy(h.IBytes[:], raw[OffIBytes:OffIBytes+ibyteSize])
	for i := range h.Waves {
		h.Waves[i] = r.i16(OffWave1 + 2*i)
	}
	for i := range h.Labels {
		off := OffLabels + i*LabelSize
		copy(h.Labels[i][:], raw[off:off+LabelSize])
	}
	return h, nil
}

// ReadHeader reads and decodes the fixed header from offset 0 of r.
// A file shorter than HeaderSize yields ErrTruncated.
func ReadHeader(r io.ReaderAt, e Endian) (Header, error) {
	raw := make([]byte, HeaderSize)
	n, err := r.ReadAt(raw, 0)
	if n < HeaderSize {
		if err == nil || errors.Is(err, io.EOF) {
			return Header{}, fmt.Errorf("%w: have %d of %d bytes", ErrTruncated, n, HeaderSize)
		}
		return Header{}, err
	}
	return DecodeHeader(raw, e)
}
