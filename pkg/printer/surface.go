package printer

import (
	"bytes"
	"errors"
	"sync"
)

var (
	// ErrSurfaceBusy is returned by Open while a previous document is still being written.
	ErrSurfaceBusy = errors.New("printer: surface already open")
	// ErrSurfaceClosed is returned when writing to a surface that is not open.
	ErrSurfaceClosed = errors.New("printer: surface is not open")
	// ErrNothingLoaded is returned by Print before any document finished loading.
	ErrNothingLoaded = errors.New("printer: no document loaded")
)

// Surface is the target of one render-and-print cycle. Content is written
// between Open and Close; Loaded fires once the written document is complete
// and only then may Print be called.
type Surface interface {
	Open() error
	Write(p []byte) (int, error)
	Close() error
	// Loaded returns the channel for the document opened last. It is closed
	// when that document has finished loading.
	Loaded() <-chan struct{}
	// Print triggers the device print of the loaded document.
	Print() error
	// IsConnected reports whether the surface is a live, usable handle.
	IsConnected() bool
}

// DeviceSurface buffers a document and hands it to a Printer transport.
type DeviceSurface struct {
	mu      sync.Mutex
	printer Printer
	buf     bytes.Buffer
	open    bool
	ready   bool
	loaded  chan struct{}
}

// NewDeviceSurface creates a surface backed by p.
func NewDeviceSurface(p Printer) *DeviceSurface {
	return &DeviceSurface{printer: p, loaded: make(chan struct{})}
}

func (s *DeviceSurface) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return ErrSurfaceBusy
	}
	s.buf.Reset()
	s.open = true
	s.ready = false
	s.loaded = make(chan struct{})
	return nil
}

func (s *DeviceSurface) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return 0, ErrSurfaceClosed
	}
	return s.buf.Write(p)
}

func (s *DeviceSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrSurfaceClosed
	}
	s.open = false
	s.ready = true
	close(s.loaded)
	return nil
}

func (s *DeviceSurface) Loaded() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *DeviceSurface) Print() error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNothingLoaded
	}
	data := append([]byte(nil), s.buf.Bytes()...)
	s.mu.Unlock()

	return s.printer.Print(data)
}

func (s *DeviceSurface) IsConnected() bool {
	return s != nil && s.printer != nil && s.printer.IsConnected()
}

// Content returns a copy of the last loaded document.
func (s *DeviceSurface) Content() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}
