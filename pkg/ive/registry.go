// Package ive emulates the stream-handle surface of the legacy IVE image
// library on top of pkg/dv. Streams are addressed by caller-chosen integer
// ids held in an explicit Registry.
package ive

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/samcharles93/dvfile/internal/logger"
	"github.com/samcharles93/dvfile/pkg/dv"
)

var (
	ErrStreamNotFound  = errors.New("ive: stream not found")
	ErrUnsupportedMode = errors.New("ive: unsupported open mode")
)

// ModeReadOnly is the only open mode the registry accepts.
const ModeReadOnly = "ro"

// Summary is the subset of the header returned by IMRdHdr.
type Summary struct {
	Extents [3]int32 // nx, ny, nz
	Grid    [3]int32 // mx, my, mz
	Mode    dv.PixelType
	Min     float32
	Max     float32
	Mean    float32
}

// Registry maps stream ids to open files. Each entry is owned by the
// registry and closed when it is replaced or removed. The map is safe for
// concurrent use; a single stream's cursor is not.
type Registry struct {
	mu      sync.Mutex
	streams map[int]*dv.File
	log     logger.Logger
}

// NewRegistry returns an empty registry that reports through log. A nil
// logger discards output.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Discard()
	}
	return &Registry{
		streams: make(map[int]*dv.File),
		log:     log.With("component", "ive"),
	}
}

// Open installs the file at path under id. A stream already registered under
// id is closed first, even when the new open fails. The registry is not
// locked while the file itself is opened.
func (r *Registry) Open(id int, path, mode string) error {
	r.displace(id)

	if mode != ModeReadOnly {
		return fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
	f, err := dv.Open(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	prev, raced := r.streams[id]
	r.streams[id] = f
	r.mu.Unlock()
	if raced {
		r.closeDisplaced(id, prev)
	}
	r.log.Debug("stream opened", "stream", id, "path", path)
	return nil
}

// displace removes and closes the stream registered under id, if any.
func (r *Registry) displace(id int) {
	r.mu.Lock()
	prev, ok := r.streams[id]
	delete(r.streams, id)
	r.mu.Unlock()
	if ok {
		r.closeDisplaced(id, prev)
	}
}

func (r *Registry) closeDisplaced(id int, prev *dv.File) {
	if err := prev.Close(); err != nil {
		r.log.Warn("closing displaced stream failed", "stream", id, "error", err)
	}
	r.log.Warn("stream id reused, previous stream closed", "stream", id, "path", prev.Path())
}

// Close removes and closes stream id. Unknown ids are ignored.
func (r *Registry) Close(id int) error {
	r.mu.Lock()
	f, ok := r.streams[id]
	delete(r.streams, id)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return f.Close()
}

// CloseAll closes every registered stream and empties the registry.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	streams := r.streams
	r.streams = make(map[int]*dv.File)
	r.mu.Unlock()

	var errs []error
	for id, f := range streams {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("stream %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// IDs returns the registered stream ids in ascending order.
func (r *Registry) IDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.streams))
	for id := range r.streams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// File returns the handle registered under id.
func (r *Registry) File(id int) (*dv.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.streams[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrStreamNotFound, id)
	}
	return f, nil
}

// Header returns a copy of the header of stream id.
func (r *Registry) Header(id int) (dv.Header, error) {
	f, err := r.File(id)
	if err != nil {
		return dv.Header{}, err
	}
	return f.Header(), nil
}

// Summary returns the extents, sampling grid, pixel type and statistics of
// stream id.
func (r *Registry) Summary(id int) (Summary, error) {
	h, err := r.Header(id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Extents: [3]int32{h.NX, h.NY, h.NZ},
		Grid:    [3]int32{h.MX, h.MY, h.MZ},
		Mode:    h.Mode,
		Min:     h.Min,
		Max:     h.Max,
		Mean:    h.Mean,
	}, nil
}

// Position moves stream id to section z of wavelength w at time point t.
// The argument order follows the legacy ZWT convention.
func (r *Registry) Position(id, z, w, t int) error {
	f, err := r.File(id)
	if err != nil {
		return err
	}
	return f.Position(t, w, z)
}

// ReadSection reads the section at the cursor of stream id into buf.
func (r *Registry) ReadSection(id int, buf []byte) error {
	f, err := r.File(id)
	if err != nil {
		return err
	}
	return f.ReadSection(buf)
}
