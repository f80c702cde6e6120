package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrWriteFailed = errors.New("write failed")

// Stdout is the target name that selects standard output.
const Stdout = "-"

// Meta describes the encoded image handed to a sink.
type Meta struct {
	ID     string
	Format string
	Width  int
	Height int
}

// Sink receives one finished image.
type Sink interface {
	Write(meta Meta, data []byte) error
	Close() error
}

// Open picks a sink for target: "-" is stdout, ws:// and wss:// URLs are
// WebSocket receivers, anything else is a file path.
func Open(target string) (Sink, error) {
	switch {
	case target == Stdout:
		return NewWriterSink(os.Stdout), nil
	case strings.HasPrefix(target, "ws://"), strings.HasPrefix(target, "wss://"):
		return NewWebSocketSink(target), nil
	case target == "":
		return nil, errors.New("empty output target")
	}
	return NewFileSink(target), nil
}

// WriterSink copies the image to an io.Writer.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Write(_ Meta, data []byte) error {
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s *WriterSink) Close() error { return nil }

// FileSink writes the image next to its destination and renames it into
// place, so a failed write never leaves a partial file behind.
type FileSink struct {
	path string
	perm os.FileMode
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, perm: 0o644}
}

func (s *FileSink) Write(_ Meta, data []byte) (err error) {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrWriteFailed, s.path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, s.path, err)
	}
	if err = f.Chmod(s.perm); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrWriteFailed, s.path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrWriteFailed, s.path, err)
	}
	if err = os.Rename(f.Name(), s.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %v", ErrWriteFailed, s.path, err)
	}
	return nil
}

func (s *FileSink) Close() error { return nil }
