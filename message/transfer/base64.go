package transfer

import (
	"encoding/base64"
	"io"
	"strings"
)

// Line lengths used when wrapping base64 output. RFC 2045 caps encoded lines
// at 76 characters. Attachments written by the message builder use 72.
const (
	DefaultBase64LineLength    = 76
	AttachmentBase64LineLength = 72
)

// DefaultLineBreak is the line break written after each line of wrapped
// output.
const DefaultLineBreak = "\r\n"

// lineWrapper breaks the stream it passes along into lines of width bytes.
// Close ends a partial final line.
type lineWrapper struct {
	w     io.Writer
	width int
	col   int
	lbr   []byte
}

func (lw *lineWrapper) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		if lw.col == lw.width {
			if _, err := lw.w.Write(lw.lbr); err != nil {
				return written, err
			}
			lw.col = 0
		}

		chunk := min(len(b), lw.width-lw.col)
		n, err := lw.w.Write(b[:chunk])
		written += n
		lw.col += n
		if err != nil {
			return written, err
		}
		b = b[chunk:]
	}
	return written, nil
}

func (lw *lineWrapper) Close() error {
	if lw.col == 0 {
		return nil
	}
	lw.col = 0
	_, err := lw.w.Write(lw.lbr)
	return err
}

// NewBase64Encoder base64 encodes whatever is written to it onto w, in CRLF
// lines of DefaultBase64LineLength.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	return NewWrappedBase64Encoder(w, DefaultBase64LineLength, DefaultLineBreak)
}

// NewWrappedBase64Encoder is NewBase64Encoder with the line width and break
// chosen by the caller. A width of 0 or less writes one long line. Close
// flushes the padding and ends the last line.
func NewWrappedBase64Encoder(w io.Writer, width int, lbr string) io.WriteCloser {
	if width <= 0 {
		enc := base64.NewEncoder(base64.StdEncoding, w)
		return &writer{enc, enc}
	}

	lw := &lineWrapper{w: w, width: width, lbr: []byte(lbr)}
	enc := base64.NewEncoder(base64.StdEncoding, lw)
	return &writer{enc, closers{enc, lw}}
}

// NewBase64Decoder reads base64 from r. The decoder skips line breaks.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}

// EncodeBase64 returns the base64 encoding of b, wrapped every width
// characters with the given line break.
func EncodeBase64(b []byte, width int, lbr string) string {
	var sb strings.Builder
	wc := NewWrappedBase64Encoder(&sb, width, lbr)
	// writes to a strings.Builder never fail
	_, _ = wc.Write(b)
	_ = wc.Close()
	return sb.String()
}

// stripSpace removes all line breaks and other whitespace from a base64
// payload.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

// DecodeBase64 decodes a base64 payload after removing line breaks and other
// whitespace. Payloads with or without padding are both accepted.
func DecodeBase64(s string) ([]byte, error) {
	s = stripSpace(s)

	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}

	rb, rerr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if rerr == nil {
		return rb, nil
	}

	return nil, err
}
