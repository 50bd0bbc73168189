package decode

import (
	"bufio"
	"io"
)

// bufferedReadSeeker adds read buffering to a seekable source. Seeking
// discards the buffer.
type bufferedReadSeeker struct {
	source io.ReadSeeker
	reader *bufio.Reader
}

func newBufferedReadSeeker(rs io.ReadSeeker) *bufferedReadSeeker {
	return &bufferedReadSeeker{source: rs, reader: bufio.NewReader(rs)}
}

func (b *bufferedReadSeeker) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *bufferedReadSeeker) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent {
		// the source is ahead of the caller by whatever is still buffered
		offset -= int64(b.reader.Buffered())
	}
	pos, err := b.source.Seek(offset, whence)
	b.reader.Reset(b.source)
	return pos, err
}
