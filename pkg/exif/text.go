package exif

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"png-achunk/pkg/chunk"
	"png-achunk/pkg/pool"
)

var buffers = pool.New(func() *bytes.Buffer { return new(bytes.Buffer) })

// NewText builds an iTXt chunk holding UTF-8 text under keyword.
func NewText(keyword KeywordType, text string, compress bool) (chunk.Chunk, error) {
	return Entry{ChunkType: ChunkITXT, Keyword: keyword, Compressed: compress, Text: []byte(text)}.Chunk()
}

// Chunk encodes e back into a chunk of its ChunkType. Compressed is ignored
// for tEXt and implied for zTXt.
func (e Entry) Chunk() (chunk.Chunk, error) {
	if len(e.Keyword) == 0 || len(e.Keyword) > 79 || bytes.IndexByte([]byte(e.Keyword), 0) >= 0 {
		return chunk.Chunk{}, fmt.Errorf("%w: %q", ErrKeyword, e.Keyword)
	}

	buf := buffers.Get()
	defer buffers.Put(buf)
	buf.WriteString(e.Keyword)
	buf.WriteByte(0)

	switch e.ChunkType {
	case ChunkTEXT:
		buf.Write(e.Text)
	case ChunkZTXT:
		buf.WriteByte(0)
		if err := deflate(buf, e.Text); err != nil {
			return chunk.Chunk{}, err
		}
	case ChunkITXT:
		if e.Compressed {
			buf.Write([]byte{1, 0})
		} else {
			buf.Write([]byte{0, 0})
		}
		buf.WriteString(e.LanguageTag)
		buf.WriteByte(0)
		buf.WriteString(e.TranslatedKeyword)
		buf.WriteByte(0)
		if e.Compressed {
			if err := deflate(buf, e.Text); err != nil {
				return chunk.Chunk{}, err
			}
		} else {
			buf.Write(e.Text)
		}
	default:
		return chunk.Chunk{}, fmt.Errorf("%s is not a text chunk type", e.ChunkType)
	}

	return chunk.New(e.ChunkType, bytes.Clone(buf.Bytes()))
}

func deflate(buf *bytes.Buffer, text []byte) error {
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(text); err != nil {
		zw.Close()
		return fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zlib compression failed: %w", err)
	}
	return nil
}
