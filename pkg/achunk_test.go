package lib

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"png-achunk/pkg/chunk"
	"png-achunk/pkg/decode"
	"png-achunk/pkg/encode"
)

func rgbImage(t *testing.T, custom ...Custom) []byte {
	t.Helper()
	pix := bytes.Repeat([]byte{10, 11, 12}, 10*20)
	encoded, err := EncodeImage(pix, 10, 20, encode.RGB8, custom...)
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	return encoded
}

func TestReadChunk(t *testing.T) {
	encoded := rgbImage(t,
		Custom{Name: "teST", Data: []byte{4, 5, 6}},
		Custom{Name: "prVn", Data: []byte("origin")},
		Custom{Name: "teST", Data: []byte{7}},
	)

	data, err := ReadChunkFromBytes(encoded, "teST")
	if err != nil {
		t.Fatalf("ReadChunkFromBytes: %v", err)
	}
	if !bytes.Equal(data, []byte{4, 5, 6}) {
		t.Fatalf("data=%v, want the first match", data)
	}

	data, err = ReadChunk(bytes.NewReader(encoded), "prVn")
	if err != nil || string(data) != "origin" {
		t.Fatalf("data=%q err=%v", data, err)
	}

	path := filepath.Join(t.TempDir(), "image.png")
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err = ReadChunkFromFile(path, "teST")
	if err != nil || !bytes.Equal(data, []byte{4, 5, 6}) {
		t.Fatalf("data=%v err=%v", data, err)
	}
}

func TestReadChunkErrors(t *testing.T) {
	encoded := rgbImage(t, Custom{Name: "teST", Data: []byte{4, 5, 6}})

	if _, err := ReadChunkFromBytes(encoded, "zzzz"); !errors.Is(err, ErrInvalidName) || !errors.Is(err, chunk.ErrReservedCase) {
		t.Fatalf("zzzz: err=%v", err)
	}
	if _, err := ReadChunkFromBytes(encoded, "toolong"); !errors.Is(err, ErrInvalidName) || !errors.Is(err, chunk.ErrTypeLength) {
		t.Fatalf("toolong: err=%v", err)
	}
	if _, err := ReadChunkFromBytes(encoded, "zzZz"); !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("zzZz: err=%v want %v", err, ErrChunkNotFound)
	}
	// critical chunks are never candidates
	if _, err := ReadChunkFromBytes(encoded, "IHDR"); !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("IHDR: err=%v want %v", err, ErrChunkNotFound)
	}

	notPNG := bytes.Clone(encoded)
	copy(notPNG[1:4], "GIF")
	if _, err := ReadChunkFromBytes(notPNG, "teST"); !errors.Is(err, decode.ErrNotPNG) {
		t.Fatalf("not png: err=%v want %v", err, decode.ErrNotPNG)
	}

	if _, err := ReadChunkFromFile(filepath.Join(t.TempDir(), "missing.png"), "teST"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing: err=%v", err)
	}
	// name validation comes before touching the file
	if _, err := ReadChunkFromFile(filepath.Join(t.TempDir(), "missing.png"), "x"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("missing with bad name: err=%v", err)
	}
}

func TestWriteImageInvalidCustom(t *testing.T) {
	var buf bytes.Buffer
	err := WriteImage(&buf, make([]byte, 3), 1, 1, encode.RGB8, Custom{Name: "bad"})
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("err=%v want %v", err, ErrInvalidName)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes", buf.Len())
	}

	_, err = EncodeImage(make([]byte, 3), 1, 1, encode.BGR8)
	if !errors.Is(err, encode.ErrUnsupportedColor) {
		t.Fatalf("err=%v want %v", err, encode.ErrUnsupportedColor)
	}
}
