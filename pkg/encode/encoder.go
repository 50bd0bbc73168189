package encode

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"png-achunk/pkg/chunk"
)

// Stage is the part of the output stream being written.
type Stage int

const (
	StageHeader Stage = iota
	StageChunks
	StagePixels
	StageFinish
)

func (s Stage) String() string {
	switch s {
	case StageHeader:
		return "header"
	case StageChunks:
		return "custom chunks"
	case StagePixels:
		return "image data"
	case StageFinish:
		return "finish"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// EncodingError reports which stage of writing a PNG failed.
type EncodingError struct {
	Stage Stage
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding PNG %s: %v", e.Stage, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Encoder writes PNG images with custom chunks placed between the header
// and the image data. It exclusively owns its writer.
type Encoder struct {
	// Chunks are written in order, before the image data.
	Chunks []chunk.Chunk

	writer io.Writer
	flush  func() error
	closer io.Closer
}

func NewEncoder(w io.Writer) *Encoder {
	if w == nil {
		panic("nil Writer")
	}

	return &Encoder{writer: w}
}

// Create encodes to the file at path, creating or truncating it. Close
// releases it.
func Create(path string) (*Encoder, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating file: %w", err)
	}

	w := bufio.NewWriterSize(f, 64*1024)
	return &Encoder{writer: w, flush: w.Flush, closer: f}, nil
}

// AddChunk appends custom chunks to be written before the image data.
func (e *Encoder) AddChunk(c ...chunk.Chunk) {
	e.Chunks = append(e.Chunks, c...)
}

// WriteImage encodes a raw pixel buffer of the given size and format.
func (e *Encoder) WriteImage(pix []byte, width, height int, format ColorFormat) error {
	img, err := newImage(pix, width, height, format)
	if err != nil {
		return err
	}

	return e.Encode(img)
}

// Encode writes img using the PNG codec at its default compression level,
// which picks a filter per row.
func (e *Encoder) Encode(img image.Image) error {
	s := &splicer{writer: e.writer, chunks: e.Chunks}

	err := imaging.Encode(s, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
	if err != nil {
		var encodingErr *EncodingError
		if errors.As(err, &encodingErr) {
			return encodingErr
		}
		return &EncodingError{Stage: s.stage, Err: err}
	}
	if err := s.finished(); err != nil {
		return &EncodingError{Stage: s.stage, Err: err}
	}

	if e.flush != nil {
		if err := e.flush(); err != nil {
			return &EncodingError{Stage: StageFinish, Err: err}
		}
	}
	return nil
}

func (e *Encoder) Close() error {
	if e.closer == nil {
		return nil
	}

	var err error
	if e.flush != nil {
		err = e.flush()
	}
	if cerr := e.closer.Close(); err == nil {
		err = cerr
	}
	e.closer = nil
	return err
}
