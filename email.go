package eml

import (
	"time"

	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/transfer"
)

// Date is the Date header of a message. Raw always holds the header as it was
// found. Time is the zero time when Raw could not be parsed.
type Date struct {
	Time time.Time
	Raw  string
}

// IsZero returns true if the message had no Date header.
func (d Date) IsZero() bool {
	return d.Raw == "" && d.Time.IsZero()
}

// Body is the text or HTML body of a message along with the header of the
// part it came from.
type Body struct {
	// Content is the decoded content, always text when produced by Read.
	Content transfer.Content

	// Header holds the Content-Type and Content-Transfer-Encoding of the part
	// the body came from. It may be nil.
	Header *header.Header
}

// NewTextBody returns a Body holding the given text and no header.
func NewTextBody(s string) *Body {
	return &Body{Content: transfer.NewText(s)}
}

// Text returns the body as a UTF-8 string.
func (b *Body) Text() string {
	if b == nil {
		return ""
	}
	return b.Content.Text()
}

// Alternative records that a message has a nested multipart part, usually
// multipart/alternative.
type Alternative struct {
	// ContentType is the Content-Type header of the nested part.
	ContentType string
}

// Attachment is any part of a message other than the first text and HTML
// bodies.
type Attachment struct {
	// Name comes from the name (or filename) parameter of the
	// Content-Disposition header or else the Content-Type header.
	Name string

	// ContentType is the Content-Type header as it appears.
	ContentType string

	// Inline is true when Content-Disposition begins with "inline".
	Inline bool

	// Data is the decoded content. It is binary for base64 and binary
	// transfer encodings and text otherwise.
	Data transfer.Content

	// Filename is the filename parameter of Content-Disposition.
	Filename string

	// MimeType is the media type of the Content-Type without parameters.
	MimeType string

	// ID is the Content-ID header as it appears, angle brackets and all.
	ID string

	// CID is the Content-ID with the angle brackets stripped.
	CID string
}

// Email is the flattened form of a message produced by Read and consumed by
// Build.
type Email struct {
	Date    Date
	Subject string

	// From, To, and Cc are nil when the header is absent or holds no
	// addresses.
	From address.List
	To   address.List
	Cc   address.List

	// Header is the top-level header of the message.
	Header *header.Header

	// MultipartAlternative is set when the message has a nested multipart
	// part.
	MultipartAlternative *Alternative

	Text *Body
	HTML *Body

	Attachments []Attachment
}
