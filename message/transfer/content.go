package transfer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zostay/go-eml/message/charset"
)

// ErrDecode is returned by DecodeContentErr when the body of a part cannot be
// decoded according to its Content-transfer-encoding.
var ErrDecode = errors.New("unable to decode content")

// Content is the decoded body of a message part. It is either text, which is
// held as UTF-8 unless Charset says otherwise, or binary data.
type Content struct {
	data    []byte
	binary  bool
	charset string
}

// NewText returns text Content holding the given UTF-8 string.
func NewText(s string) Content {
	return Content{data: []byte(s), charset: charset.UTF8}
}

// NewBinary returns binary Content holding the given bytes.
func NewBinary(b []byte) Content {
	return Content{data: b, binary: true}
}

// IsBinary returns true if the content holds binary data rather than text.
func (c Content) IsBinary() bool {
	return c.binary
}

// Charset returns the charset of the bytes held. Binary data decoded from a
// text part keeps the charset of that part.
func (c Content) Charset() string {
	if c.charset == "" {
		return charset.UTF8
	}
	return c.charset
}

// Bytes returns the bytes held by the content.
func (c Content) Bytes() []byte {
	return c.data
}

// Text returns the content as a UTF-8 string, converting from the charset of
// the content as needed. Bytes that cannot be converted are returned as-is.
func (c Content) Text() string {
	return charset.DecodeLenient(c.Charset(), c.data)
}

// Len returns the number of bytes held.
func (c Content) Len() int {
	return len(c.data)
}

// String returns the same value as Text.
func (c Content) String() string {
	return c.Text()
}

// DecodeContent decodes the raw body of a message part according to the given
// Content-transfer-encoding and charset. It never fails: content that cannot
// be decoded is returned as text holding the raw body. Use DecodeContentErr to
// find out when that happens.
func DecodeContent(raw, cte, cs string) Content {
	c, _ := DecodeContentErr(raw, cte, cs)
	return c
}

// DecodeContentErr works like DecodeContent, but also returns an error
// wrapping ErrDecode when the fallback to the raw body was taken.
//
// The result depends on the encoding:
//
//   - base64: the decoded bytes as binary content. For the GB family of
//     charsets, the bytes are converted to UTF-8 first.
//   - quoted-printable: the decoded text, converted to UTF-8.
//   - 7bit, or no encoding at all: the raw body as text.
//   - 8bit or binary (or any encoding starting with those) with a charset
//     other than UTF-8: the raw body converted to UTF-8 text.
//   - binary with a UTF-8 charset: the raw body as binary content.
//   - 8bit with a UTF-8 charset, or anything else: the raw body as text.
func DecodeContentErr(raw, cte, cs string) (Content, error) {
	cs = charset.Normalize(cs)
	enc := Normalize(cte)

	switch {
	case enc == Base64:
		b, err := DecodeBase64(raw)
		if err != nil {
			return Content{data: []byte(raw), charset: cs}, fmt.Errorf("%w: base64: %w", ErrDecode, err)
		}

		if charset.IsChinese(cs) {
			return Content{data: []byte(charset.DecodeLenient(cs, b)), binary: true, charset: charset.UTF8}, nil
		}

		return Content{data: b, binary: true, charset: cs}, nil

	case enc == QuotedPrintable:
		return NewText(DecodeQuotedPrintable(raw, cs)), nil

	case enc == None || enc == Bit7:
		return Content{data: []byte(raw), charset: cs}, nil

	case strings.HasPrefix(enc, Bit8) || strings.HasPrefix(enc, Binary):
		if !charset.IsUTF8(cs) {
			s, err := charset.Decode(cs, []byte(raw))
			if err != nil {
				return Content{data: []byte(raw), charset: charset.UTF8}, fmt.Errorf("%w: %w", ErrDecode, err)
			}
			return NewText(s), nil
		}

		if strings.HasPrefix(enc, Binary) {
			return Content{data: []byte(raw), binary: true, charset: cs}, nil
		}

		return NewText(raw), nil
	}

	return Content{data: []byte(raw), charset: cs}, nil
}
