package share

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Compressor is a reversible string transform whose output is URL safe.
type Compressor interface {
	Compress(s string) (string, error)
	Decompress(s string) (string, error)
}

// DefaultMaxDecodedSize bounds how much a token may expand to.
const DefaultMaxDecodedSize = 1 << 20

// LZMACompressor compresses with LZMA and encodes the stream as unpadded
// base64url.
type LZMACompressor struct {
	MaxDecodedSize int64 // default DefaultMaxDecodedSize
}

func (c LZMACompressor) Compress(s string) (string, error) {
	var buf bytes.Buffer
	w, err := lzma.WriterConfig{DictCap: 1 << 16}.NewWriter(&buf)
	if err != nil {
		return "", fmt.Errorf("creating lzma writer: %w", err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		w.Close()
		return "", fmt.Errorf("compressing: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing lzma writer: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

func (c LZMACompressor) Decompress(s string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}

	r, err := lzma.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("creating lzma reader: %w", err)
	}

	limit := c.MaxDecodedSize
	if limit <= 0 {
		limit = DefaultMaxDecodedSize
	}
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("decompressing: %w", err)
	}
	if int64(len(out)) > limit {
		return "", fmt.Errorf("decompressed token exceeds %d bytes", limit)
	}
	return string(out), nil
}
