package exif

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"png-achunk/pkg/chunk"
	"png-achunk/pkg/decode"
)

var (
	ChunkTEXT = chunk.Type{'t', 'E', 'X', 't'}
	ChunkZTXT = chunk.Type{'z', 'T', 'X', 't'}
	ChunkITXT = chunk.Type{'i', 'T', 'X', 't'}
)

type KeywordType = string

const (
	KeywordTitle       KeywordType = "Title"
	KeywordAuthor      KeywordType = "Author"
	KeywordDescription KeywordType = "Description"
	KeywordComment     KeywordType = "Comment"
	KeywordSoftware    KeywordType = "Software"
	KeywordSource      KeywordType = "Source"
)

var ErrKeyword = errors.New("keyword must be 1-79 bytes without NUL")

// Entry represents a single textual chunk parsed from a PNG.
type Entry struct {
	// ChunkType is tEXt, zTXt or iTXt
	ChunkType chunk.Type
	// Keyword is the keyword (e.g. "Description")
	Keyword KeywordType
	// Compressed reports whether the text was zlib-compressed
	Compressed bool
	// LanguageTag is the optional iTXt language tag (may be empty)
	LanguageTag string
	// TranslatedKeyword is the optional iTXt translated keyword (may be empty)
	TranslatedKeyword string
	// Text is the decompressed payload
	Text []byte
}

// Parse returns the textual chunks that precede the image data in r.
func Parse(r io.ReadSeeker) ([]Entry, error) {
	chunks, err := decode.NewDecoder(r).AncillaryChunks()
	if err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}
	return Entries(chunks)
}

// Entries parses every textual chunk in chunks and skips the rest.
func Entries(chunks []chunk.Chunk) ([]Entry, error) {
	var entries []Entry
	for _, c := range chunks {
		entry, ok, err := ParseChunk(c)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ParseChunk decodes c if it is a textual chunk; ok is false otherwise.
func ParseChunk(c chunk.Chunk) (entry Entry, ok bool, err error) {
	switch c.Type {
	case ChunkTEXT:
		entry, err = parseTEXtData(c.Data)
	case ChunkZTXT:
		entry, err = parseZTXtData(c.Data)
	case ChunkITXT:
		entry, err = parseITXtData(c.Data)
	default:
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("invalid %s chunk: %w", c.Type, err)
	}
	entry.ChunkType = c.Type
	return entry, true, nil
}

func splitKeyword(data []byte) (string, []byte, error) {
	parts := bytes.SplitN(data, []byte{0}, 2)
	if len(parts) < 2 {
		return "", nil, errors.New("missing keyword field")
	}
	return string(parts[0]), parts[1], nil
}

func parseTEXtData(data []byte) (Entry, error) {
	keyword, text, err := splitKeyword(data)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Keyword: keyword, Text: text}, nil
}

func parseZTXtData(data []byte) (Entry, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return Entry{}, err
	}
	if len(rest) < 1 {
		return Entry{}, errors.New("missing compression method")
	}
	if rest[0] != 0 {
		return Entry{}, fmt.Errorf("unknown compression method %d", rest[0])
	}

	text, err := inflate(rest[1:])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Keyword: keyword, Compressed: true, Text: text}, nil
}

// parseITXtData extracts fields from raw iTXt chunk data.
func parseITXtData(data []byte) (Entry, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return Entry{}, err
	}
	if len(rest) < 2 {
		return Entry{}, errors.New("missing compression flags")
	}

	// compression flag: 0 = uncompressed, 1 = compressed
	compressed := rest[0] == 1
	if compressed && rest[1] != 0 {
		return Entry{}, fmt.Errorf("unknown compression method %d", rest[1])
	}
	body := rest[2:]

	// Split language tag, translated keyword, and actual text
	fields := bytes.SplitN(body, []byte{0}, 3)
	if len(fields) < 3 {
		return Entry{}, errors.New("missing fields after compression flags")
	}
	text := fields[2]

	if compressed {
		text, err = inflate(text)
		if err != nil {
			return Entry{}, err
		}
	}

	return Entry{
		Keyword:           keyword,
		Compressed:        compressed,
		LanguageTag:       string(fields[0]),
		TranslatedKeyword: string(fields[1]),
		Text:              text,
	}, nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("reading decompressed data: %w", err)
	}
	return out, nil
}
