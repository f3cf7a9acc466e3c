package share

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Codec turns payloads into share tokens and back. A Codec is safe for
// concurrent use when its Compressor is.
type Codec struct {
	compressor Compressor
}

// NewCodec returns a codec using LZMACompressor.
func NewCodec() *Codec {
	return NewCodecWith(LZMACompressor{})
}

// NewCodecWith returns a codec using c.
func NewCodecWith(c Compressor) *Codec {
	return &Codec{compressor: c}
}

// Encode validates and normalizes p and returns its share token.
func (c *Codec) Encode(p Payload) (string, error) {
	if err := Validate(p); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	data, err := json.Marshal(Normalize(p))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	token, err := c.compressor.Compress(string(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if token == "" {
		return "", ErrEncoding
	}
	return token, nil
}

// Decode parses a share token into a validated, normalized payload.
func (c *Codec) Decode(token string) (Payload, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Payload{}, ErrEmptyToken
	}

	text, err := c.compressor.Decompress(token)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if text == "" {
		return Payload{}, ErrDecode
	}

	return parsePayload([]byte(text), ErrMalformedPayload)
}

// ParseSelectionJSON parses selection JSON text into a validated, normalized
// payload.
func ParseSelectionJSON(text string) (Payload, error) {
	return parsePayload([]byte(text), ErrInvalidJSON)
}

// ParseFromText accepts selection JSON, a share URL or a bare token.
func (c *Codec) ParseFromText(text string) (Payload, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		return ParseSelectionJSON(text)
	}

	token, err := ExtractToken(text)
	if err != nil {
		return Payload{}, err
	}
	return c.Decode(token)
}

var defaultCodec = NewCodec()

// Encode encodes p with the default codec.
func Encode(p Payload) (string, error) { return defaultCodec.Encode(p) }

// Decode decodes token with the default codec.
func Decode(token string) (Payload, error) { return defaultCodec.Decode(token) }

// ParseFromText parses text with the default codec.
func ParseFromText(text string) (Payload, error) { return defaultCodec.ParseFromText(text) }
