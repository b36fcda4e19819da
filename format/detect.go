// Package format provides input text encoding detection and decoding.
package format

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding represents a detected input text encoding.
type Encoding int

const (
	// UTF8 indicates plain UTF-8 without a byte order mark.
	UTF8 Encoding = iota
	// UTF8BOM indicates UTF-8 with a byte order mark.
	UTF8BOM
	// UTF16LE indicates little-endian UTF-16 with a byte order mark.
	UTF16LE
	// UTF16BE indicates big-endian UTF-16 with a byte order mark.
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "UTF-8 BOM"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	default:
		return "UTF-8"
	}
}

// Detect sniffs the encoding of raw input bytes from its byte order mark.
// Input without a recognizable mark is treated as UTF-8.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return UTF8
	}
}

// Decode converts raw input bytes to a UTF-8 string, honoring any byte
// order mark. Invalid UTF-8 in unmarked input is rejected rather than
// silently mangled.
func Decode(data []byte) (string, error) {
	switch Detect(data) {
	case UTF8BOM:
		return string(data[3:]), nil
	case UTF16LE:
		return decodeUTF16(data, unicode.LittleEndian)
	case UTF16BE:
		return decodeUTF16(data, unicode.BigEndian)
	default:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
		return string(data), nil
	}
}

func decodeUTF16(data []byte, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 input: %w", err)
	}
	return string(out), nil
}
