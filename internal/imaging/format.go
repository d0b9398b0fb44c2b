package imaging

import (
	"bytes"
	"image"
	"strings"
)

var extensions = map[string]string{
	"gif":  ".gif",
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

// DetectFormat names the encoding of data ("gif", "jpeg", "png", "webp"), or
// returns "" when no registered decoder recognises it.
func DetectFormat(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return format
}

// Extension maps a format name to its canonical file extension, defaulting
// to ".png".
func Extension(format string) string {
	if ext, ok := extensions[strings.ToLower(format)]; ok {
		return ext
	}
	return ".png"
}
