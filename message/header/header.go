package header

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/zostay/go-eml/message/header/field"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because the there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrEmptyName is returned when adding a field without a name.
	ErrEmptyName = errors.New("header field name is empty")
)

// These are standard headers defined in RFC 5322 and RFC 2045.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-ID"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	MessageID               = "Message-ID"
	MIMEVersion             = "MIME-Version"
	ReplyTo                 = "Reply-To"
	Subject                 = "Subject"
	To                      = "To"
)

// CRLF is the line break written between header lines.
const CRLF = "\r\n"

// Indent is written after the line break of a body that spans lines.
const Indent = "  "

// Header is an ordered collection of header fields. Each distinct name is held
// once, in the order it first appeared, with the case of that first
// appearance. Repeated fields are held together as a field.Multi value.
// Lookups by name ignore case.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField.
type Header struct {
	fields []*field.Field
}

// New returns an empty header.
func New() *Header {
	return &Header{}
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	c := &Header{fields: make([]*field.Field, len(h.fields))}
	for i, f := range h.fields {
		c.fields[i] = f.Clone()
	}
	return c
}

// Len returns the number of distinct field names in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// ListFields returns all the fields in the header in order.
func (h *Header) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Names returns the names of the fields in order.
func (h *Header) Names() []string {
	ns := make([]string, len(h.fields))
	for i, f := range h.fields {
		ns[i] = f.Name()
	}
	return ns
}

// index returns the position of the named field or -1.
func (h *Header) index(name string) int {
	for i, f := range h.fields {
		if f.Is(name) {
			return i
		}
	}
	return -1
}

// GetField returns the named field or nil.
func (h *Header) GetField(name string) *field.Field {
	if ix := h.index(name); ix >= 0 {
		return h.fields[ix]
	}
	return nil
}

// Has returns true if the named field is present.
func (h *Header) Has(name string) bool {
	return h.index(name) >= 0
}

// Add adds a body to the named field. If the field is not yet present, it is
// appended to the end of the header. Otherwise, the body is added to the
// existing field, which turns a single value into a multi value.
func (h *Header) Add(name, body string) error {
	if name == "" {
		return ErrEmptyName
	}

	if f := h.GetField(name); f != nil {
		f.Add(body)
		return nil
	}

	h.fields = append(h.fields, field.New(name, body))
	return nil
}

// Get retrieves the string value of the named field.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField. If there are multiple headers for the given named field,
// it will return the first value found and return ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	f := h.GetField(name)
	if f == nil {
		return "", ErrNoSuchField
	}

	if f.Len() > 1 {
		return f.Body(), ErrManyFields
	}

	return f.Body(), nil
}

// GetFirst works like Get, but does not complain about repeated fields.
func (h *Header) GetFirst(name string) (string, error) {
	f := h.GetField(name)
	if f == nil {
		return "", ErrNoSuchField
	}
	return f.Body(), nil
}

// GetAll fetches all the header field bodies for fields with the given
// name and returns them as a slice of strings.
//
// It returns nil with ErrNoSuchField if no field with the given name is set on
// the header.
func (h *Header) GetAll(name string) ([]string, error) {
	f := h.GetField(name)
	if f == nil {
		return nil, ErrNoSuchField
	}
	return f.Bodies(), nil
}

// Set will replace the named field with a single body. If the field already
// exists, it keeps its position in the header and takes the given name. If the
// field does not exist, it will be appended to the end of the header.
func (h *Header) Set(name, body string) {
	h.SetAll(name, body)
}

// SetAll replaces all the bodies of the named field. If the field already
// exists, it keeps its position in the header. Otherwise, it is appended to
// the end. Passing no bodies deletes the field.
func (h *Header) SetAll(name string, bodies ...string) {
	if name == "" {
		return
	}

	if len(bodies) == 0 {
		h.Delete(name)
		return
	}

	if f := h.GetField(name); f != nil {
		f.SetName(name)
		f.SetBodies(bodies...)
		return
	}

	h.fields = append(h.fields, field.NewMulti(name, bodies...))
}

// Delete removes the named field. It returns true if a field was removed.
func (h *Header) Delete(name string) bool {
	ix := h.index(name)
	if ix < 0 {
		return false
	}

	copy(h.fields[ix:], h.fields[ix+1:])
	h.fields[len(h.fields)-1] = nil
	h.fields = h.fields[:len(h.fields)-1]
	return true
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// WriteTo writes each field of the header to w, one line per body, in order.
// Every line ends in CRLF. Line breaks inside a body are rewritten as CRLF
// followed by Indent. The blank line that ends a header block is not written.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range h.fields {
		for _, b := range f.Bodies() {
			n, err := fmt.Fprintf(w, "%s: %s%s", f.Name(), lineBreak.ReplaceAllString(b, CRLF+Indent), CRLF)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the header as it would be written by WriteTo.
func (h *Header) String() string {
	var sb strings.Builder
	_, _ = h.WriteTo(&sb)
	return sb.String()
}
