package message

import (
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-eml/message/header"
)

// Opaque is a leaf: a header and a body. The body is kept exactly as it was
// found, transfer encoding and all.
type Opaque struct {
	header.Header

	// body is the literal body with CRLF line breaks
	body string

	// hasBody is false when no empty line ended the header
	hasBody bool

	// token is the delimiter that opened this part within its parent
	token string
}

// NewOpaque returns an Opaque with a copy of the given header and the given
// body. A nil header results in an empty header.
func NewOpaque(h *header.Header, body string) *Opaque {
	m := &Opaque{body: body, hasBody: true}
	if h != nil {
		m.Header = *h.Clone()
	}
	return m
}

// WriteTo writes the Opaque header and body to the destination io.Writer.
// The header is followed by an empty line and then the body, unless the part
// has no body at all.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	total, err := m.Header.WriteTo(w)
	if err != nil {
		return total, err
	}

	if !m.hasBody {
		return total, nil
	}

	n, err := fmt.Fprint(w, header.CRLF, m.body)
	total += int64(n)
	return total, err
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// HasBody returns true if the header was followed by a body, even an empty
// one.
func (m *Opaque) HasBody() bool {
	return m.hasBody
}

// GetBody returns the literal body of the message.
func (m *Opaque) GetBody() string {
	return m.body
}

// GetReader returns the reader containing the body of the message or nil.
func (m *Opaque) GetReader() io.Reader {
	if !m.hasBody {
		return nil
	}
	return strings.NewReader(m.body)
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}

// Boundary returns the delimiter token that opened this part in its parent.
func (m *Opaque) Boundary() string {
	return m.token
}
