package share

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// FragmentMarker precedes the token in a share URL.
	FragmentMarker = "#/share/"
	pathMarker     = "/share/"
)

// ExtractToken finds the share token in pasted input: the text after
// "#/share/" anywhere in a URL, after a leading "/share/", or the whole
// input. The token is percent-decoded.
func ExtractToken(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrEmptyInput
	}

	raw := trimmed
	if idx := strings.Index(trimmed, FragmentMarker); idx >= 0 {
		raw = strings.TrimSpace(trimmed[idx+len(FragmentMarker):])
		if raw == "" {
			return "", ErrMissingToken
		}
	} else if strings.HasPrefix(trimmed, pathMarker) {
		raw = strings.TrimSpace(trimmed[len(pathMarker):])
		if raw == "" {
			return "", ErrMissingToken
		}
	}

	token, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return token, nil
}

// ShareURL appends token to base as a "#/share/" fragment, replacing any
// fragment base already has.
func ShareURL(base, token string) string {
	if idx := strings.Index(base, "#"); idx >= 0 {
		base = base[:idx]
	}
	return base + FragmentMarker + url.PathEscape(token)
}
