package storage

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidBase64 = errors.New("invalid base64 image payload")

// DecodeBase64Image accepts raw base64 or a data URL
// ("data:image/png;base64,....") and returns the bytes with their
// detected MIME type.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, "", ErrInvalidBase64
		}
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", ErrInvalidBase64
		}
	}
	if len(data) == 0 {
		return nil, "", ErrInvalidBase64
	}

	return data, baseType(mimetype.Detect(data).String()), nil
}
