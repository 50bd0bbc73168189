package lib

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"

	"png-achunk/pkg/chunk"
)

// ReadJSON decodes the JSON payload of the chunk called name into T.
func ReadJSON[T any](r io.ReadSeeker, name string) (T, error) {
	return readValue[T](r, name, json.Unmarshal)
}

// ReadCBOR decodes the CBOR payload of the chunk called name into T.
func ReadCBOR[T any](r io.ReadSeeker, name string) (T, error) {
	return readValue[T](r, name, cbor.Unmarshal)
}

func readValue[T any](r io.ReadSeeker, name string, unmarshal func([]byte, any) error) (T, error) {
	var t T
	data, err := ReadChunk(r, name)
	if err != nil {
		return t, err
	}
	if err := unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("could not parse chunk %s: %w", name, err)
	}
	return t, nil
}

// JSONChunk builds a chunk called name holding v as JSON.
func JSONChunk(name string, v any) (chunk.Chunk, error) {
	return valueChunk(name, v, json.Marshal)
}

// CBORChunk builds a chunk called name holding v as deterministic CBOR.
func CBORChunk(name string, v any) (chunk.Chunk, error) {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return chunk.Chunk{}, err
	}
	return valueChunk(name, v, mode.Marshal)
}

func valueChunk(name string, v any, marshal func(any) ([]byte, error)) (chunk.Chunk, error) {
	data, err := marshal(v)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("could not encode chunk %s: %w", name, err)
	}

	chunks, err := Chunks(Custom{Name: name, Data: data})
	if err != nil {
		return chunk.Chunk{}, err
	}
	return chunks[0], nil
}

// Fingerprint identifies a chunk by the xxhash of its type and data.
func Fingerprint(c chunk.Chunk) string {
	digest := xxhash.New()
	digest.Write(c.Type[:])
	digest.Write(c.Data)
	return fmt.Sprintf("%016x", digest.Sum64())
}
