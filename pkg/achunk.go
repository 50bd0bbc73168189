package lib

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"png-achunk/pkg/chunk"
	"png-achunk/pkg/decode"
	"png-achunk/pkg/encode"
)

var (
	ErrInvalidName   = errors.New("invalid chunk name")
	ErrChunkNotFound = errors.New("chunk not found")
)

// Custom is a chunk to embed, named by its 4-letter type.
type Custom struct {
	Name string
	Data []byte
}

// ReadChunk returns the data of the first ancillary chunk called name.
func ReadChunk(r io.ReadSeeker, name string) ([]byte, error) {
	t, err := parseName(name)
	if err != nil {
		return nil, err
	}

	return readChunk(decode.NewDecoder(r), t)
}

func ReadChunkFromFile(path, name string) ([]byte, error) {
	t, err := parseName(name)
	if err != nil {
		return nil, err
	}

	d, err := decode.Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	return readChunk(d, t)
}

func ReadChunkFromBytes(b []byte, name string) ([]byte, error) {
	return ReadChunk(bytes.NewReader(b), name)
}

func parseName(name string) (chunk.Type, error) {
	t, err := chunk.ParseType(name)
	if err != nil {
		return chunk.Type{}, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return t, nil
}

func readChunk(d *decode.Decoder, t chunk.Type) ([]byte, error) {
	chunks, err := d.AncillaryChunks()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG chunks: %w", err)
	}

	for _, c := range chunks {
		if c.Type == t {
			return c.Data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, t)
}

// WriteImage encodes a raw pixel buffer to w with the custom chunks placed
// before the image data, in order.
func WriteImage(w io.Writer, pix []byte, width, height int, format encode.ColorFormat, custom ...Custom) error {
	chunks, err := Chunks(custom...)
	if err != nil {
		return err
	}

	e := encode.NewEncoder(w)
	e.AddChunk(chunks...)
	return e.WriteImage(pix, width, height, format)
}

// EncodeImage is WriteImage into memory.
func EncodeImage(pix []byte, width, height int, format encode.ColorFormat, custom ...Custom) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteImage(&buf, pix, width, height, format, custom...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Chunks validates and converts custom chunk definitions.
func Chunks(custom ...Custom) ([]chunk.Chunk, error) {
	chunks := make([]chunk.Chunk, 0, len(custom))
	for _, c := range custom {
		t, err := parseName(c.Name)
		if err != nil {
			return nil, err
		}
		ch, err := chunk.New(t, c.Data)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", t, err)
		}
		chunks = append(chunks, ch)
	}
	return chunks, nil
}
