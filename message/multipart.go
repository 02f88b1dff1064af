package message

import (
	"fmt"
	"io"

	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/header/param"
)

// Part is an interface define the parts of a Multipart. Each Part is
// either a branch or a leaf.
//
// A branch Part is one that has sub-parts. In this case, the IsMultipart()
// method will return true and GetParts() returns the sub-parts.
//
// A leaf Part is one that contains content. In this case, the IsMultipart()
// method will return false. The GetBody() method returns the literal body of
// the part, exactly as it appeared in the message, with line breaks normalized
// to CRLF. No transfer decoding is performed. See Read for that.
//
// It should be noted that it is possible for a Part to contain content that
// is a multipart MIME message when IsMultipart() returns false. This happens
// when a multipart Content-Type names a boundary that never shows up in the
// body.
type Part interface {
	io.WriterTo

	// IsMultipart will return true if this Part is a branch with nested
	// parts.
	IsMultipart() bool

	// GetHeader is available on all Part objects.
	GetHeader() *header.Header

	// HasBody returns true if the part had a body at all. A part whose header
	// was never terminated by an empty line has none. A Multipart always
	// returns false.
	HasBody() bool

	// GetBody returns the literal body of a leaf Part. It returns an empty
	// string for a Multipart.
	GetBody() string

	// GetReader returns an io.Reader over GetBody() or nil if the part has no
	// body.
	GetReader() io.Reader

	// GetParts provides the sub-parts of a multipart message. This must return
	// nil if IsMultipart() is false.
	GetParts() []Part

	// Boundary returns the delimiter token that opened this part within its
	// parent: the text of the delimiter line following the leading "--". It is
	// empty for the top-level message.
	Boundary() string
}

// Generic is a Part that may be a whole message rather than a sub-part. Parse
// only ever returns a *Opaque or a *Multipart as a Generic, so a type switch
// on those two covers every case.
type Generic = Part

// Multipart is a multipart MIME message. The MIME type set in the Content-type
// header should always start with multipart/*.
type Multipart struct {
	// Header is the header for the message.
	header.Header

	// token is the delimiter that opened this part within its parent
	token string

	// delimiter is the boundary separating the sub-parts
	delimiter string

	// parts holds this layer's parts
	parts []Part
}

// NewMultipart returns a Multipart with the given header and sub-parts. The
// delimiter is the boundary that separates the parts. If it is empty, the
// boundary parameter of the Content-Type header is used.
func NewMultipart(h *header.Header, delimiter string, parts ...Part) *Multipart {
	mm := &Multipart{delimiter: delimiter, parts: parts}
	if h != nil {
		mm.Header = *h.Clone()
	}

	if mm.delimiter == "" {
		mm.delimiter, _ = mm.GetBoundary()
	}

	return mm
}

// newMultipart returns a new Multipart for a set of parts just parsed.
func newMultipart(h *header.Header, token, delimiter string, parts []Part) *Multipart {
	return &Multipart{
		Header:    *h,
		token:     token,
		delimiter: delimiter,
		parts:     parts,
	}
}

// multipartNew is shared by MultipartAlternative and MultipartMixed.
func multipartNew(mt, boundary string, parts []Part) *Multipart {
	mm := &Multipart{delimiter: boundary, parts: parts}
	mm.SetContentType(param.NewWithParams(mt, map[string]string{
		param.Boundary: boundary,
	}))
	return mm
}

// MultipartAlternative returns a Multipart with a Content-type header set to
// multipart/alternative with the given boundary and the given parts attached.
func MultipartAlternative(boundary string, parts ...Part) *Multipart {
	return multipartNew("multipart/alternative", boundary, parts)
}

// MultipartMixed returns a Multipart with a Content-type header set to
// multipart/mixed with the given boundary and the given parts attached.
func MultipartMixed(boundary string, parts ...Part) *Multipart {
	return multipartNew("multipart/mixed", boundary, parts)
}

// WriteTo writes the Multipart header and parts to the destination io.Writer.
// Each part is written after a "--" delimiter line and the parts are followed
// by the terminal delimiter line. All line breaks are written as CRLF.
//
// This method will fail with an error if the message has no delimiter.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	if mm.delimiter == "" {
		return 0, fmt.Errorf("%w: multipart has no boundary", ErrArgument)
	}

	n, err := mm.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	bn, err := fmt.Fprint(w, header.CRLF)
	n += int64(bn)
	if err != nil {
		return n, err
	}

	for _, part := range mm.parts {
		token := part.Boundary()
		if token == "" {
			token = mm.delimiter
		}

		bn, err := fmt.Fprintf(w, "--%s%s", token, header.CRLF)
		n += int64(bn)
		if err != nil {
			return n, err
		}

		pn, err := part.WriteTo(w)
		n += pn
		if err != nil {
			return n, err
		}

		bn, err = fmt.Fprint(w, header.CRLF)
		n += int64(bn)
		if err != nil {
			return n, err
		}
	}

	bn, err = fmt.Fprintf(w, "--%s--%s", mm.delimiter, header.CRLF)
	n += int64(bn)
	return n, err
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// GetHeader returns the header for the message.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// HasBody always returns false.
func (mm *Multipart) HasBody() bool {
	return false
}

// GetBody always returns an empty string.
func (mm *Multipart) GetBody() string {
	return ""
}

// GetReader always returns nil.
func (mm *Multipart) GetReader() io.Reader {
	return nil
}

// GetParts returns the sub-parts in the order they appeared.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}

// Boundary returns the delimiter token that opened this part in its parent.
func (mm *Multipart) Boundary() string {
	return mm.token
}

// Delimiter returns the boundary that separates the sub-parts of this
// message.
func (mm *Multipart) Delimiter() string {
	return mm.delimiter
}
