package api

import (
	"github.com/samcharles93/dvfile/internal/version"
	"github.com/samcharles93/dvfile/pkg/dv"
)

type ErrorBody struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Param   string `json:"param,omitempty"`
}

type OpenRequest struct {
	Path string `json:"path"`
}

type FileInfo struct {
	ID            string        `json:"id"`
	Object        string        `json:"object"`
	Path          string        `json:"path"`
	OpenedAt      int64         `json:"opened_at"`
	Closed        bool          `json:"closed"`
	NX            int32         `json:"nx"`
	NY            int32         `json:"ny"`
	NZ            int32         `json:"nz"`
	Planes        int           `json:"planes"`
	Waves         int16         `json:"waves"`
	Times         int16         `json:"times"`
	Mode          int32         `json:"mode"`
	PixelType     string        `json:"pixel_type"`
	ByteOrder     string        `json:"byte_order"`
	SequenceOrder string        `json:"sequence_order"`
	ImageType     string        `json:"image_type"`
	Min           float32       `json:"min"`
	Max           float32       `json:"max"`
	Mean          float32       `json:"mean"`
	Wavelengths   []int16       `json:"wavelengths,omitempty"`
	Titles        []string      `json:"titles,omitempty"`
	Sizes         []dv.AxisSize `json:"sizes"`
}

type FileList struct {
	Object string     `json:"object"`
	Data   []FileInfo `json:"data"`
}

type SizesResponse struct {
	ID    string        `json:"id"`
	Sizes []dv.AxisSize `json:"sizes"`
}

type SectionResponse struct {
	ID        string    `json:"id"`
	T         int       `json:"t"`
	C         int       `json:"c"`
	Z         int       `json:"z"`
	NX        int32     `json:"nx"`
	NY        int32     `json:"ny"`
	PixelType string    `json:"pixel_type"`
	Samples   []float32 `json:"samples"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type VersionResponse struct {
	version.Info
}

func fileInfo(rec *fileRecord) FileInfo {
	f := rec.File
	h := f.Header()
	return FileInfo{
		ID:            rec.ID,
		Object:        "dv.file",
		Path:          f.Path(),
		OpenedAt:      rec.OpenedAt.Unix(),
		Closed:        f.Closed(),
		NX:            h.NX,
		NY:            h.NY,
		NZ:            h.NZ,
		Planes:        h.NumPlanes(),
		Waves:         h.NumWaves,
		Times:         h.NumTimes,
		Mode:          int32(h.Mode),
		PixelType:     h.Mode.String(),
		ByteOrder:     f.ByteOrder().String(),
		SequenceOrder: h.SequenceOrder(),
		ImageType:     h.ImageType(),
		Min:           h.Min,
		Max:           h.Max,
		Mean:          h.Mean,
		Wavelengths:   h.Wavelengths(),
		Titles:        h.Titles(),
		Sizes:         h.Sizes(),
	}
}
