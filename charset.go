package parcel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

var errUnknownCharset = errors.New("unknown charset")

// charsetAliases maps common spellings that neither the IANA nor the WHATWG
// index accepts onto a name they do.
var charsetAliases = map[string]string{
	"utf8":      "utf-8",
	"latin-1":   "iso-8859-1",
	"latin_1":   "iso-8859-1",
	"iso8859-1": "iso-8859-1",
	"ascii":     "us-ascii",
}

// normalizeEncoding defaults and case-folds a content encoding.
func normalizeEncoding(enc string) string {
	enc = strings.ToLower(strings.TrimSpace(enc))
	if enc == "" {
		return EncodingUTF8
	}
	return enc
}

// isBytePreserving reports whether payloads in enc stay raw bytes.
func isBytePreserving(enc string) bool {
	return enc == EncodingBinary || enc == EncodingASCII8Bit
}

// decodeText turns b into text using the named charset. Invalid input is
// an error, never silently replaced.
func decodeText(b []byte, charset string) (string, error) {
	if alias, ok := charsetAliases[charset]; ok {
		charset = alias
	}

	switch charset {
	case EncodingUTF8:
		if !utf8.Valid(b) {
			return "", newCharsetError(charset, fmt.Errorf("invalid UTF-8 at byte %d", invalidUTF8Offset(b)))
		}
		return string(b), nil
	case "us-ascii":
		for i, c := range b {
			if c >= utf8.RuneSelf {
				return "", newCharsetError(charset, fmt.Errorf("byte 0x%02x at %d is not ASCII", c, i))
			}
		}
		return string(b), nil
	}

	enc, err := lookupCharset(charset)
	if err != nil {
		return "", newCharsetError(charset, err)
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", newCharsetError(charset, err)
	}
	return string(out), nil
}

// lookupCharset resolves a charset name through the IANA registry first and
// the WHATWG labels second.
func lookupCharset(name string) (encoding.Encoding, error) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownCharset, name)
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
