package transfer

import (
	"io"
	"strings"
)

// Content-Transfer-Encoding values. Only QuotedPrintable and Base64 change the
// bytes. The rest, and the empty value, pass bytes through untouched.
const (
	None            = ""
	Bit7            = "7bit"
	Bit8            = "8bit"
	Binary          = "binary"
	QuotedPrintable = "quoted-printable"
	Base64          = "base64"
)

// Header is what ApplyTransferEncoding and ApplyTransferDecoding need to know
// about a part. *header.Header satisfies it.
type Header interface {
	GetTransferEncoding() (string, error)
	GetMediaType() (string, error)
}

// Transcoding pairs the streaming encoder and decoder of one
// Content-Transfer-Encoding. Writers returned by Encoder must be closed to
// flush the final line.
type Transcoding struct {
	Encoder func(io.Writer) io.WriteCloser
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder passes bytes through in both directions.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings maps each known Content-Transfer-Encoding to its Transcoding.
// Programs may add to it.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// writer joins a destination with whatever has to be closed to flush it.
type writer struct {
	io.Writer
	io.Closer
}

func (w *writer) Close() error {
	if w.Closer == nil {
		return nil
	}
	return w.Closer.Close()
}

// closers closes in order and stops at the first failure.
type closers []io.Closer

func (cs closers) Close() error {
	for _, c := range cs {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

// NewAsIsEncoder wraps w with a no-op Close.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return &writer{Writer: w}
}

// NewAsIsDecoder returns r.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// Normalize lowercases and trims a Content-Transfer-Encoding value.
func Normalize(cte string) string {
	return strings.ToLower(strings.TrimSpace(cte))
}

// Lookup finds the Transcoding for cte. Unknown encodings get AsIsTranscoder
// and false.
func Lookup(cte string) (Transcoding, bool) {
	if tc, ok := Transcodings[Normalize(cte)]; ok {
		return tc, true
	}
	return AsIsTranscoder, false
}

// ApplyTransferEncoding returns a writer that applies the
// Content-Transfer-Encoding of h to everything written through it before
// passing it on to w. Close it when done.
func ApplyTransferEncoding(h Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return NewAsIsEncoder(w)
	}

	tc, _ := Lookup(cte)
	return tc.Encoder(w)
}

// ApplyTransferDecoding returns a reader that undoes the
// Content-Transfer-Encoding of h while reading r. The bodies of multipart
// parts are returned untouched since they are never transfer encoded.
func ApplyTransferDecoding(h Header, r io.Reader) io.Reader {
	if mt, err := h.GetMediaType(); err == nil && strings.HasPrefix(strings.ToLower(mt), "multipart/") {
		return r
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return r
	}

	tc, _ := Lookup(cte)
	return tc.Decoder(r)
}
