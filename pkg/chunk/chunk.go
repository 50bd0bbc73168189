package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

var (
	ErrTooLarge = errors.New("chunk data too large")
	ErrChecksum = errors.New("invalid chunk checksum")
)

// Chunk is one PNG chunk: a type and its payload. The on-disk length is
// always len(Data).
type Chunk struct {
	Type Type
	Data []byte
}

// New creates a chunk, rejecting payloads whose length does not fit the
// 32-bit length field.
func New(t Type, data []byte) (Chunk, error) {
	if err := checkLength(uint64(len(data))); err != nil {
		return Chunk{}, err
	}
	return Chunk{Type: t, Data: data}, nil
}

func checkLength(n uint64) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}
	return nil
}

func (c Chunk) Length() uint32 { return uint32(len(c.Data)) }

// Checksum returns the CRC-32 (IEEE) of t followed by data.
func Checksum(t Type, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(t[:])
	crc.Write(data)
	return crc.Sum32()
}

// Read parses a single chunk from r and verifies its checksum.
func Read(r io.Reader) (Chunk, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:4]); err != nil {
		return Chunk{}, fmt.Errorf("reading chunk length: %w", err)
	}
	length := binary.BigEndian.Uint32(header[:4])

	if _, err := io.ReadFull(r, header[4:]); err != nil {
		return Chunk{}, fmt.Errorf("reading chunk type: %w", err)
	}
	t, err := ParseType(string(header[4:]))
	if err != nil {
		return Chunk{}, fmt.Errorf("reading chunk type: %w", err)
	}

	// Grow as bytes arrive rather than trusting length for the allocation.
	data, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return Chunk{}, fmt.Errorf("reading chunk data for %s: %w", t, err)
	}
	if uint64(len(data)) != uint64(length) {
		return Chunk{}, fmt.Errorf("reading chunk data for %s: %w", t, io.ErrUnexpectedEOF)
	}

	var footer [4]byte
	if _, err := io.ReadFull(r, footer[:]); err != nil {
		return Chunk{}, fmt.Errorf("reading CRC for %s: %w", t, err)
	}
	stored := binary.BigEndian.Uint32(footer[:])
	if computed := Checksum(t, data); computed != stored {
		return Chunk{}, fmt.Errorf("%w: %s stored %08x, computed %08x", ErrChecksum, t, stored, computed)
	}

	return Chunk{Type: t, Data: data}, nil
}

// WriteTo serializes c as length, type, data and CRC.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	if err := checkLength(uint64(len(c.Data))); err != nil {
		return 0, err
	}

	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], c.Length())
	copy(header[4:], c.Type[:])
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], Checksum(c.Type, c.Data))

	var written int64
	for _, part := range [][]byte{header[:], c.Data, footer[:]} {
		n, err := w.Write(part)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("writing chunk %s: %w", c.Type, err)
		}
	}
	return written, nil
}
