package plist

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding of a project file.
type Encoding uint8

const (
	EncodingUTF8    Encoding = iota // plain UTF-8, the Xcode default
	EncodingUTF8BOM                 // UTF-8 with byte order mark
	EncodingUTF16LE                 // UTF-16 little-endian with BOM
	EncodingUTF16BE                 // UTF-16 big-endian with BOM
)

// String implements the Stringer interface for Encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF8BOM:
		return "UTF-8 (BOM)"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Detect inspects the byte order mark of src.
func Detect(src []byte) Encoding {
	switch {
	case bytes.HasPrefix(src, UTF8BOM):
		return EncodingUTF8BOM
	case bytes.HasPrefix(src, UTF16LEBOM):
		return EncodingUTF16LE
	case bytes.HasPrefix(src, UTF16BEBOM):
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

func codec(e Encoding) encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

// DecodeInput converts src to UTF-8 and reports the encoding it found.
// Plain UTF-8 input is returned without copying.
func DecodeInput(src []byte) ([]byte, Encoding, error) {
	enc := Detect(src)
	c := codec(enc)
	if c == nil {
		return src, enc, nil
	}
	out, err := c.NewDecoder().Bytes(src)
	if err != nil {
		return nil, enc, fmt.Errorf("plist: decode %s input: %w", enc, err)
	}
	return out, enc, nil
}

// EncodeOutput converts UTF-8 text back to enc, adding the byte order mark
// the encoding carries.
func EncodeOutput(text []byte, enc Encoding) ([]byte, error) {
	c := codec(enc)
	if c == nil {
		return text, nil
	}
	out, err := c.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("plist: encode %s output: %w", enc, err)
	}
	return out, nil
}
