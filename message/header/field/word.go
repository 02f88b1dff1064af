package field

import (
	"mime"
	"regexp"
	"strings"

	"github.com/zostay/go-eml/message/charset"
	"github.com/zostay/go-eml/message/transfer"
)

var (
	encodedWord = regexp.MustCompile(`(?i)=\?([^?]+)\?(B|Q)\?(.+?)\?=`)

	// linear whitespace between two encoded words is not displayed
	adjacentWords = regexp.MustCompile(`(?i)(=\?[^?]+\?[BQ]\?.+?\?=)[ \t\r\n]+(=\?[^?]+\?[BQ]\?.+?\?=)`)

	lineBreaks = regexp.MustCompile(`\r?\n`)
)

var wordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// DecodeEncodedWord decodes a single RFC 2047 encoded word of the form
// =?charset?B?payload?= or =?charset?Q?payload?=. The encoding letter is
// matched without regard to case. Anything that does not look like an encoded
// word, or that cannot be decoded, is returned unchanged.
func DecodeEncodedWord(token string) string {
	m := encodedWord.FindStringSubmatch(token)
	if m == nil {
		return token
	}

	if s, err := wordDecoder.Decode(m[0]); err == nil {
		return s
	}

	cs, payload := m[1], m[3]
	switch strings.ToUpper(m[2]) {
	case "B":
		b, err := transfer.DecodeBase64(payload)
		if err != nil {
			return token
		}
		return charset.DecodeLenient(cs, b)
	case "Q":
		return transfer.DecodeQuotedPrintable(strings.ReplaceAll(payload, "_", " "), cs)
	}

	return token
}

// DecodeValue replaces every encoded word in a field body with its decoded
// text. Whitespace separating two encoded words is dropped, as are embedded
// line breaks. Bodies without encoded words only lose their line breaks.
func DecodeValue(raw string) string {
	s := raw
	for {
		joined := adjacentWords.ReplaceAllString(s, "$1$2")
		if joined == s {
			break
		}
		s = joined
	}

	s = encodedWord.ReplaceAllStringFunc(s, DecodeEncodedWord)
	return lineBreaks.ReplaceAllString(s, "")
}

// EncodeValue returns the body as a UTF-8 B-encoded word when it holds any
// characters outside of printable ASCII. Other bodies are returned as-is.
func EncodeValue(body string) string {
	for _, r := range body {
		if r > '~' || (r < ' ' && r != '\t') {
			return mime.BEncoding.Encode(charset.UTF8, body)
		}
	}
	return body
}
