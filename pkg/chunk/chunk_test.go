package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{nil, {}, {4, 5, 6}, bytes.Repeat([]byte("abc"), 10000)}
	for _, payload := range payloads {
		c, err := New(MustParseType("teST"), payload)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		var buf bytes.Buffer
		n, err := c.WriteTo(&buf)
		if err != nil {
			t.Fatalf("WriteTo: %v", err)
		}
		if n != int64(12+len(payload)) || buf.Len() != 12+len(payload) {
			t.Fatalf("wrote n=%d len=%d for %d byte payload", n, buf.Len(), len(payload))
		}

		got, err := Read(&buf)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got.Type != c.Type || !bytes.Equal(got.Data, payload) {
			t.Fatalf("round trip got %s %v", got.Type, got.Data)
		}
		if got.Length() != uint32(len(payload)) {
			t.Fatalf("Length()=%d want %d", got.Length(), len(payload))
		}
	}
}

func TestWireLayout(t *testing.T) {
	var buf bytes.Buffer
	if _, err := (Chunk{Type: IEND}).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	want := []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("IEND bytes=% x want % x", buf.Bytes(), want)
	}
}

func TestBitFlipFailsChecksum(t *testing.T) {
	var buf bytes.Buffer
	if _, err := (Chunk{Type: MustParseType("teST"), Data: []byte{4, 5, 6}}).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	encoded := buf.Bytes()

	// Payload starts after length and type; the checksum is the last 4 bytes.
	for i := 8; i < len(encoded); i++ {
		for bit := 0; bit < 8; bit++ {
			corrupt := bytes.Clone(encoded)
			corrupt[i] ^= 1 << bit
			_, err := Read(bytes.NewReader(corrupt))
			if !errors.Is(err, ErrChecksum) {
				t.Fatalf("flip byte %d bit %d: err=%v", i, bit, err)
			}
		}
	}
}

func TestReadInvalidType(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0))
	buf.WriteString("abcd")
	binary.Write(&buf, binary.BigEndian, uint32(0))

	if _, err := Read(&buf); !errors.Is(err, ErrReservedCase) {
		t.Fatalf("err=%v want %v", err, ErrReservedCase)
	}

	buf.Reset()
	binary.Write(&buf, binary.BigEndian, uint32(0))
	buf.Write([]byte{'a', 0xff, 'C', 'd'})
	if _, err := Read(&buf); !errors.Is(err, ErrNonASCII) {
		t.Fatalf("err=%v want %v", err, ErrNonASCII)
	}
}

func TestReadShort(t *testing.T) {
	var buf bytes.Buffer
	if _, err := (Chunk{Type: MustParseType("teST"), Data: []byte{1, 2, 3, 4}}).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	encoded := buf.Bytes()

	for cut := 0; cut < len(encoded); cut++ {
		_, err := Read(bytes.NewReader(encoded[:cut]))
		if err == nil {
			t.Fatalf("cut=%d: expected error", cut)
		}
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("cut=%d: err=%v want EOF", cut, err)
		}
	}
}

func TestLengthLimit(t *testing.T) {
	if err := checkLength(math.MaxUint32); err != nil {
		t.Fatalf("2^32-1: %v", err)
	}
	if err := checkLength(math.MaxUint32 + 1); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("2^32: err=%v want %v", err, ErrTooLarge)
	}
}

type failWriter struct{ after int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, io.ErrClosedPipe
	}
	w.after--
	return len(p), nil
}

func TestWriteToError(t *testing.T) {
	for after := 0; after < 3; after++ {
		_, err := (Chunk{Type: MustParseType("teST"), Data: []byte{1}}).WriteTo(&failWriter{after: after})
		if !errors.Is(err, io.ErrClosedPipe) {
			t.Fatalf("after=%d: err=%v", after, err)
		}
	}
}
