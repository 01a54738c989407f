// Package imageenc turns an attached image file into a self-contained
// data URI that can be stored inline with a record.
package imageenc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// MaxSize bounds the raw image size accepted by Encode.
const MaxSize = 5 << 20

// ErrEncoding is matched by every EncodingError.
var ErrEncoding = errors.New("image encoding failed")

// EncodingError wraps the reason an image could not be encoded.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("image encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// Encode returns data as a "data:<mime>;base64,..." URI. The content type
// is sniffed from the bytes and must be an image type.
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &EncodingError{Err: errors.New("empty payload")}
	}
	if len(data) > MaxSize {
		return "", &EncodingError{Err: fmt.Errorf("payload of %d bytes exceeds %d", len(data), MaxSize)}
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", &EncodingError{Err: fmt.Errorf("unsupported content type %s", mime)}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Decode splits a data URI produced by Encode back into its content type
// and bytes.
func Decode(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("data uri is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri: %w", err)
	}
	return mime, data, nil
}

// IsWebURL reports whether s is an absolute http or https URL with a host.
func IsWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
