package transfer

import (
	"io"
	"mime/quotedprintable"
	"regexp"
	"strings"

	"github.com/zostay/go-eml/message/charset"
)

// NewQuotedPrintableEncoder writes quoted-printable to w. Close must be called
// to flush the last line.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder reads quoted-printable from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}

var (
	trailingSpace = regexp.MustCompile(`(?m)[\t ]+(\r?)$`)
	softBreak     = regexp.MustCompile(`=(\r?\n|$)`)
)

// unescape decodes =XX escapes, leaving any malformed escape in place.
func unescape(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '=' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// decodeQuotedPrintableBytes strips trailing whitespace from each line,
// removes soft line breaks, and decodes the escapes that remain. Hard line
// breaks are kept as they were.
func decodeQuotedPrintableBytes(value string) []byte {
	raw := trailingSpace.ReplaceAllString(value, "$1")
	raw = softBreak.ReplaceAllString(raw, "")

	b, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(raw)))
	if err == nil {
		return b
	}

	return unescape(raw)
}

// DecodeQuotedPrintable decodes a quoted-printable value and converts the
// result from the given charset into UTF-8. Malformed escapes are left as-is
// and an unknown charset leaves the decoded bytes unconverted.
func DecodeQuotedPrintable(value, cs string) string {
	return charset.DecodeLenient(cs, decodeQuotedPrintableBytes(value))
}
