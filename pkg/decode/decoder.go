package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"png-achunk/pkg/chunk"
)

var ErrNotPNG = errors.New("not a PNG")

// SignatureSize is the length of the leading PNG signature.
const SignatureSize = 8

// Decoder reads ancillary chunks from a PNG stream, optionally followed by
// the image itself. It exclusively owns its reader.
type Decoder struct {
	reader io.ReadSeeker
	closer io.Closer
}

func NewDecoder(r io.ReadSeeker) *Decoder {
	if r == nil {
		panic("nil ReadSeeker")
	}

	return &Decoder{reader: r}
}

// FromBytes decodes an in-memory PNG.
func FromBytes(b []byte) *Decoder {
	return NewDecoder(bytes.NewReader(b))
}

// Open decodes the file at path using buffered reads. Close releases it.
func Open(path string) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	return &Decoder{reader: newBufferedReadSeeker(f), closer: f}, nil
}

func (d *Decoder) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

// AncillaryChunks returns the non-critical chunks that precede the image
// data, in stream order. Any malformed chunk aborts the scan.
func (d *Decoder) AncillaryChunks() ([]chunk.Chunk, error) {
	if _, err := d.reader.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to start: %w", err)
	}

	var signature [SignatureSize]byte
	if _, err := io.ReadFull(d.reader, signature[:]); err != nil {
		return nil, fmt.Errorf("reading PNG signature: %w", err)
	}
	if string(signature[1:4]) != "PNG" {
		return nil, ErrNotPNG
	}

	var chunks []chunk.Chunk
	for {
		c, err := chunk.Read(d.reader)
		if err != nil {
			return nil, err
		}

		switch c.Type {
		case chunk.IDAT, chunk.IEND:
			return chunks, nil
		}
		if !c.Type.IsCritical() {
			chunks = append(chunks, c)
		}
	}
}

// DecodeAll scans the ancillary chunks, then rewinds and decodes the image.
func (d *Decoder) DecodeAll() (image.Image, []chunk.Chunk, error) {
	chunks, err := d.AncillaryChunks()
	if err != nil {
		return nil, nil, err
	}

	if _, err := d.reader.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seeking to start: %w", err)
	}
	img, err := imaging.Decode(d.reader)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode image: %w", err)
	}

	return img, chunks, nil
}
