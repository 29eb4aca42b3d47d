package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
)

// Compression names an output compression codec.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionSnappy Compression = "snappy"
)

// ParseCompression validates a codec name. An empty name means none.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", string(CompressionNone):
		return CompressionNone, nil
	case string(CompressionSnappy):
		return CompressionSnappy, nil
	default:
		return "", fmt.Errorf("unsupported compression %q (supported: none, snappy)", name)
	}
}

// UnmarshalText parses a codec name.
func (c *Compression) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Compress wraps w with the codec. Closing the result flushes the codec but
// leaves w open.
func Compress(w io.Writer, codec Compression) io.WriteCloser {
	if codec == CompressionSnappy {
		return snappy.NewBufferedWriter(w)
	}
	return nopWriteCloser{w}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
