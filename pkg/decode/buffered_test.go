package decode

import (
	"bytes"
	"io"
	"testing"
)

func TestBufferedReadSeeker(t *testing.T) {
	data := []byte("0123456789abcdefghij")
	b := newBufferedReadSeeker(bytes.NewReader(data))

	p := make([]byte, 3)
	if _, err := io.ReadFull(b, p); err != nil || string(p) != "012" {
		t.Fatalf("read=%q err=%v", p, err)
	}

	pos, err := b.Seek(2, io.SeekCurrent)
	if err != nil || pos != 5 {
		t.Fatalf("SeekCurrent pos=%d err=%v", pos, err)
	}
	if _, err := io.ReadFull(b, p); err != nil || string(p) != "567" {
		t.Fatalf("read=%q err=%v", p, err)
	}

	if pos, err := b.Seek(-2, io.SeekEnd); err != nil || pos != 18 {
		t.Fatalf("SeekEnd pos=%d err=%v", pos, err)
	}
	rest, err := io.ReadAll(b)
	if err != nil || string(rest) != "ij" {
		t.Fatalf("rest=%q err=%v", rest, err)
	}

	if pos, err := b.Seek(0, io.SeekStart); err != nil || pos != 0 {
		t.Fatalf("SeekStart pos=%d err=%v", pos, err)
	}
	if _, err := io.ReadFull(b, p); err != nil || string(p) != "012" {
		t.Fatalf("read=%q err=%v", p, err)
	}
}
