// Package charset normalizes the charset names found on email messages and
// converts text between those charsets and UTF-8. Lookups consult the WHATWG
// index in golang.org/x/text/encoding/htmlindex first and fall back onto the
// IANA MIME index, which between them cover nearly every charset seen in the
// wild.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnknown is returned when a charset name cannot be mapped to a known
// encoding.
var ErrUnknown = errors.New("unknown charset")

// Canonical names for the charsets that get special treatment while decoding
// message content.
const (
	UTF8    = "utf-8"
	USASCII = "us-ascii"
	GBK     = "gbk"
	GB18030 = "gb18030"
)

// aliases are applied before the index lookups. Most of these are spellings
// that the indexes reject, but which turn up in real mail anyway.
var aliases = map[string]string{
	"utf8":           UTF8,
	"utf-8":          UTF8,
	"unicode-1-1":    UTF8,
	"ascii":          USASCII,
	"us-ascii":       USASCII,
	"ansi_x3.4-1968": USASCII,
	"gb2312":         GBK,
	"gb_2312-80":     GBK,
	"x-gbk":          GBK,
	"cp936":          GBK,
	"gbk":            GBK,
	"gb18030":        GB18030,
}

// clean strips the noise that shows up around charset names in parameter
// values.
func clean(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize returns the canonical, lowercase name for the given charset name.
// The empty name normalizes to "utf-8", which is the charset assumed for
// content that does not declare one. Names that cannot be found in any index
// are returned lowercased and trimmed.
func Normalize(name string) string {
	n := clean(name)
	if n == "" {
		return UTF8
	}

	if a, ok := aliases[n]; ok {
		return a
	}

	if e, err := htmlindex.Get(n); err == nil {
		if cn, err := htmlindex.Name(e); err == nil {
			return strings.ToLower(cn)
		}
	}

	if e, err := ianaindex.MIME.Encoding(n); err == nil && e != nil {
		if cn, err := ianaindex.MIME.Name(e); err == nil {
			return strings.ToLower(cn)
		}
	}

	return n
}

// IsUTF8 returns true if the named charset is UTF-8 (or is empty, which is
// treated the same).
func IsUTF8(name string) bool {
	return Normalize(name) == UTF8
}

// IsChinese returns true for the GB family of simplified Chinese charsets.
func IsChinese(name string) bool {
	switch Normalize(name) {
	case GBK, GB18030, "hz-gb-2312":
		return true
	}
	return false
}

// passthrough returns true for charsets that need no conversion to become
// UTF-8.
func passthrough(name string) bool {
	switch Normalize(name) {
	case UTF8, USASCII:
		return true
	}
	return false
}

// Lookup returns the encoding for the named charset or an error wrapping
// ErrUnknown.
func Lookup(name string) (encoding.Encoding, error) {
	n := Normalize(name)

	if e, err := htmlindex.Get(n); err == nil {
		return e, nil
	}

	e, err := ianaindex.MIME.Encoding(n)
	if err == nil && e != nil {
		return e, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Decode converts bytes in the named charset into a UTF-8 string.
func Decode(name string, b []byte) (string, error) {
	if passthrough(name) {
		return string(b), nil
	}

	e, err := Lookup(name)
	if err != nil {
		return "", err
	}

	db, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", Normalize(name), err)
	}

	return string(db), nil
}

// DecodeLenient works like Decode, but when the charset is unknown or the
// bytes cannot be converted, the bytes are returned as-is as a string.
func DecodeLenient(name string, b []byte) string {
	s, err := Decode(name, b)
	if err != nil {
		return string(b)
	}
	return s
}

// Encode converts a UTF-8 string into bytes in the named charset.
func Encode(name, s string) ([]byte, error) {
	if passthrough(name) {
		return []byte(s), nil
	}

	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", Normalize(name), err)
	}

	return []byte(es), nil
}

// Reader is suitable for use as the CharsetReader of a mime.WordDecoder. It
// returns a reader that converts the given input from the named charset into
// UTF-8.
func Reader(name string, input io.Reader) (io.Reader, error) {
	if passthrough(name) {
		return input, nil
	}

	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return transform.NewReader(input, e.NewDecoder()), nil
}
