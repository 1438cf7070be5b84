package imaging

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURL wraps raw image bytes in a base64 data URL so a history
// record is displayable without any companion file.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URL back into its MIME type and raw bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mimeType, encoded := meta, false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		mimeType, encoded = m, true
	}
	if !encoded {
		return "", nil, fmt.Errorf("unsupported data URL encoding")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("error decoding data URL payload: %w", err)
	}
	return mimeType, data, nil
}

// Ext returns the file extension for a MIME type produced by this package.
func Ext(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
