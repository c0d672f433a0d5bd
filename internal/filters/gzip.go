package filters

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte gzip member header.
var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip reports whether data starts with a gzip header.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Decompress returns a reader yielding the decompressed contents of r when r
// starts with a gzip header, and r's contents unchanged otherwise. The
// returned closer releases the decompressor; it never closes r.
func Decompress(r io.Reader) (io.Reader, io.Closer, bool, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, nil, false, fmt.Errorf("failed to read stream header: %w", err)
	}
	if !IsGzip(magic) {
		return br, nopCloser{}, false, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, true, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return zr, zr, true, nil
}

// Gunzip decompresses gzip data held in memory.
func Gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return buf.Bytes(), nil
}
