package encode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"png-achunk/pkg/chunk"
)

var errTruncated = errors.New("codec output ended before IEND")

// splicer sits between the PNG codec and the sink. It follows the chunk
// framing of the codec output and writes the custom chunks as soon as the
// header chunk is complete.
type splicer struct {
	writer io.Writer
	chunks []chunk.Chunk

	stage    Stage
	pending  [8]byte // signature or chunk length+type being assembled
	filled   int
	remain   int64 // bytes of the current chunk body and CRC left to pass
	signed   bool
	injected bool
	ended    bool
	err      error
}

func (s *splicer) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	written := 0
	for len(p) > 0 {
		if s.remain > 0 {
			n := int64(len(p))
			if n > s.remain {
				n = s.remain
			}
			if err := s.pass(p[:n]); err != nil {
				return written, err
			}
			p = p[n:]
			written += int(n)
			s.remain -= n
			continue
		}

		if s.ended {
			return written, s.fail(fmt.Errorf("unexpected data after IEND"))
		}

		n := copy(s.pending[s.filled:], p)
		s.filled += n
		p = p[n:]
		written += n
		if s.filled < len(s.pending) {
			continue
		}
		s.filled = 0

		if !s.signed {
			s.signed = true
			if err := s.pass(s.pending[:]); err != nil {
				return written, err
			}
			continue
		}

		var t chunk.Type
		copy(t[:], s.pending[4:])
		if t != chunk.IHDR && !s.injected {
			if err := s.inject(); err != nil {
				return written, err
			}
		}
		switch t {
		case chunk.IDAT:
			s.stage = StagePixels
		case chunk.IEND:
			s.stage = StageFinish
			s.ended = true
		}

		if err := s.pass(s.pending[:]); err != nil {
			return written, err
		}
		s.remain = int64(binary.BigEndian.Uint32(s.pending[:4])) + 4
	}
	return written, nil
}

func (s *splicer) inject() error {
	s.injected = true
	s.stage = StageChunks
	for _, c := range s.chunks {
		if _, err := c.WriteTo(s.writer); err != nil {
			return s.fail(err)
		}
	}
	return nil
}

func (s *splicer) pass(p []byte) error {
	if _, err := s.writer.Write(p); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *splicer) fail(err error) error {
	s.err = &EncodingError{Stage: s.stage, Err: err}
	return s.err
}

// finished reports whether a complete stream, IEND included, went through.
func (s *splicer) finished() error {
	if !s.ended || s.remain > 0 || s.filled > 0 {
		return errTruncated
	}
	return nil
}
