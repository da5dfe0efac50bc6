package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for transcript
// discovery. Extraction consumes plain text; binary inputs belong to the OCR
// stage upstream.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"text": {},
	"ocr":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
