package ive

import (
	"github.com/samcharles93/dvfile/pkg/dv"
)

// Status codes returned by the legacy entry points. IMOpen reports failure
// as -1; the positioning and read calls use 1.
const (
	StatusOK         = 0
	StatusFailure    = 1
	StatusOpenFailed = -1
)

// IMOpen opens name under istream. Only attrib "ro" is supported.
func (r *Registry) IMOpen(istream int, name, attrib string) int {
	if err := r.Open(istream, name, attrib); err != nil {
		r.log.Error("IMOpen failed", "stream", istream, "path", name, "error", err)
		return StatusOpenFailed
	}
	return StatusOK
}

// IMClose closes istream if it is open.
func (r *Registry) IMClose(istream int) {
	if err := r.Close(istream); err != nil {
		r.log.Warn("IMClose failed", "stream", istream, "error", err)
	}
}

// IMGetHdr copies the header of istream into hdr. It returns StatusFailure
// and leaves hdr untouched for an unknown stream.
func (r *Registry) IMGetHdr(istream int, hdr *dv.Header) int {
	h, err := r.Header(istream)
	if err != nil {
		r.log.Error("IMGetHdr failed", "stream", istream, "error", err)
		return StatusFailure
	}
	*hdr = h
	return StatusOK
}

// IMRdHdr fills the dimension, grid, mode and intensity summary of istream.
func (r *Registry) IMRdHdr(istream int, ixyz, mxyz *[3]int32, imode *dv.PixelType, amin, amax, amean *float32) int {
	s, err := r.Summary(istream)
	if err != nil {
		r.log.Error("IMRdHdr failed", "stream", istream, "error", err)
		return StatusFailure
	}
	*ixyz = s.Extents
	*mxyz = s.Grid
	*imode = s.Mode
	*amin, *amax, *amean = s.Min, s.Max, s.Mean
	return StatusOK
}

// IMPosnZWT positions istream at section iz, wavelength iw, time point it.
func (r *Registry) IMPosnZWT(istream, iz, iw, it int) int {
	if err := r.Position(istream, iz, iw, it); err != nil {
		r.log.Error("IMPosnZWT failed", "stream", istream, "z", iz, "w", iw, "t", it, "error", err)
		return StatusFailure
	}
	return StatusOK
}

// IMRdSec reads the next section of istream into buf and advances past it.
func (r *Registry) IMRdSec(istream int, buf []byte) int {
	if err := r.ReadSection(istream, buf); err != nil {
		r.log.Error("IMRdSec failed", "stream", istream, "error", err)
		return StatusFailure
	}
	return StatusOK
}

// IMAlCon sets the conversion mode. Sections are always returned in their
// stored type, so enabling conversion only logs a warning.
func (r *Registry) IMAlCon(istream, flag int) {
	if flag == 1 {
		r.notImplemented("IMAlCon", istream, "conversion to float is not supported")
	}
}

// IMAlLab would replace the titles of istream.
func (r *Registry) IMAlLab(istream int, labels []byte, nl int) {
	r.notImplemented("IMAlLab", istream, "", "titles", nl, "bytes", len(labels))
}

// IMAlPrt toggles printing to stdout. Nothing is printed, so only
// enabling it logs a warning.
func (r *Registry) IMAlPrt(flag int) {
	if flag == 1 {
		r.notImplemented("IMAlPrt", -1, "")
	}
}

// IMPutHdr would replace the header of istream.
func (r *Registry) IMPutHdr(istream int, _ *dv.Header) {
	r.notImplemented("IMPutHdr", istream, "")
}

// IMRtExHdrZWT would return extended header values for one section.
func (r *Registry) IMRtExHdrZWT(istream, iz, iw, it int) {
	r.notImplemented("IMRtExHdrZWT", istream, "", "z", iz, "w", iw, "t", it)
}

// IMWrHdr would write a new header to istream.
func (r *Registry) IMWrHdr(istream int, title string, ntflag int, _, _, _ float32) {
	r.notImplemented("IMWrHdr", istream, "", "title", title, "ntflag", ntflag)
}

// IMWrSec would write a section to istream.
func (r *Registry) IMWrSec(istream int, _ []byte) {
	r.notImplemented("IMWrSec", istream, "")
}

func (r *Registry) notImplemented(op string, istream int, detail string, args ...any) {
	attrs := []any{"op", op}
	if istream >= 0 {
		attrs = append(attrs, "stream", istream)
	}
	if detail != "" {
		attrs = append(attrs, "detail", detail)
	}
	r.log.Warn("not implemented", append(attrs, args...)...)
}
