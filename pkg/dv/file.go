package dv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// File is an open DV stack. The header is read once at Open and never
// changes. All reads move a single file cursor, so a File should be driven
// by one goroutine at a time; the mutex only keeps each call atomic.
type File struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	hdr    Header
	order  Endian
	closed bool
}

// Open opens path read-only, checks the DVID marker and decodes the header.
// The returned file must be closed to release the descriptor.
func Open(path string) (*File, error) {
	f, order, hdr, err := openAndValidate(path)
	if err != nil {
		return nil, err
	}
	return &File{
		f:     f,
		path:  path,
		hdr:   hdr,
		order: order,
	}, nil
}

func openAndValidate(path string) (*os.File, Endian, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, Header{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	cleanup := func(err error) (*os.File, Endian, Header, error) {
		_ = f.Close()
		return nil, 0, Header{}, fmt.Errorf("%s: %w", path, err)
	}

	order, err := DetectByteOrder(f)
	if err != nil {
		return cleanup(err)
	}
	hdr, err := ReadHeader(f, order)
	if err != nil {
		return cleanup(err)
	}
	if _, err := f.Seek(hdr.DataOffset(), io.SeekStart); err != nil {
		return cleanup(err)
	}
	adviseSequential(f)
	return f, order, hdr, nil
}

// Reopen re-acquires the file after Close and re-validates its format. The
// header and byte order decoded by the first Open are kept; a file whose
// byte order changed since then is rejected. It is a no-op on an open file.
func (f *File) Reopen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		return nil
	}
	fd, order, _, err := openAndValidate(f.path)
	if err != nil {
		return err
	}
	if order != f.order {
		_ = fd.Close()
		return fmt.Errorf("%s: %w: byte order changed from %s to %s", f.path, ErrUnrecognizedFormat, f.order, order)
	}
	f.f = fd
	f.closed = false
	return nil
}

// Close releases the descriptor. Closing twice is a no-op.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	err := f.f.Close()
	f.f = nil
	return err
}

// Closed reports whether Close has been called.
func (f *File) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *File) Path() string { return f.path }
func (f *File) Header() Header { return f.hdr }
func (f *File) ByteOrder() Endian { return f.order }
func (f *File) Sizes() []AxisSize { return f.hdr.Sizes() }
func (f *File) PixelType() PixelType { return f.hdr.Mode }

// FrameSize returns the byte size of one section.
func (f *File) FrameSize() (int64, error) {
	return f.hdr.FrameSize()
}

// Position moves the cursor to the start of section (t, c, z).
func (f *File) Position(t, c, z int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position(t, c, z)
}

func (f *File) position(t, c, z int) error {
	if f.closed {
		return ErrClosed
	}
	off, err := SectionOffset(f.hdr, t, c, z)
	if err != nil {
		return err
	}
	_, err = f.f.Seek(off, io.SeekStart)
	return err
}

// ReadSection reads one section at the cursor into buf and advances past
// it, so repeated calls walk the sections in file order.
func (f *File) ReadSection(buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readSection(buf)
}

func (f *File) readSection(buf []byte) error {
	if f.closed {
		return ErrClosed
	}
	frame, err := f.hdr.FrameSize()
	if err != nil {
		return err
	}
	if int64(len(buf)) < frame {
		return fmt.Errorf("%w: have %d need %d", ErrBufferTooSmall, len(buf), frame)
	}
	n, err := io.ReadFull(f.f, buf[:frame])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, frame)
		}
		return err
	}
	return nil
}

// ReadSectionAt positions at (t, c, z) and reads that section into buf.
func (f *File) ReadSectionAt(buf []byte, t, c, z int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.position(t, c, z); err != nil {
		return err
	}
	return f.readSection(buf)
}

// NewSectionBuffer allocates a buffer sized for one section.
func (f *File) NewSectionBuffer() ([]byte, error) {
	frame, err := f.hdr.FrameSize()
	if err != nil {
		return nil, err
	}
	return make([]byte, frame), nil
}

// ReadSamples reads section (t, c, z) and converts it to float32 samples.
func (f *File) ReadSamples(t, c, z int) ([]float32, error) {
	buf, err := f.NewSectionBuffer()
	if err != nil {
		return nil, err
	}
	if err := f.ReadSectionAt(buf, t, c, z); err != nil {
		return nil, err
	}
	return DecodeSamples(buf, f.hdr.Mode, f.order)
}
