package eml

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/charset"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/header/field"
	"github.com/zostay/go-eml/message/header/param"
	"github.com/zostay/go-eml/message/transfer"
)

// Defaults used by Build.
const (
	// DefaultAttachmentMediaType is written for attachments without a
	// Content-Type.
	DefaultAttachmentMediaType = "application/octet-stream"

	// BoundaryPrefix starts every boundary made by NewBoundary.
	BoundaryPrefix = "----="
)

// NewBoundary returns a fresh multipart boundary.
func NewBoundary() string {
	return BoundaryPrefix + uuid.NewString()
}

type builder struct {
	encode   bool
	boundary func() string
	hook     func(string, error)
	logger   zerolog.Logger
}

var defaultBuilder = &builder{
	boundary: NewBoundary,
	logger:   zerolog.Nop(),
}

func (b *builder) clone() *builder {
	c := *b
	return &c
}

// BuildOption modifies how Build and BuildString work.
type BuildOption func(b *builder)

// WithEncode makes Build write the headers kept on the Text and HTML bodies
// in place of the defaults and encode each body according to the charset and
// Content-Transfer-Encoding found there. The Subject is written as an RFC 2047
// encoded word when it holds anything but printable ASCII.
func WithEncode() BuildOption {
	return func(b *builder) { b.encode = true }
}

// WithBoundaryGenerator sets the function Build calls when the message needs
// a new boundary. The default is NewBoundary.
func WithBoundaryGenerator(gen func() string) BuildOption {
	return func(b *builder) { b.boundary = gen }
}

// WithBuildHook sets a function called with the result of Build just before
// it is returned.
func WithBuildHook(hook func(string, error)) BuildOption {
	return func(b *builder) { b.hook = hook }
}

// WithBuildLogger sets the logger Build reports anomalies to.
func WithBuildLogger(logger zerolog.Logger) BuildOption {
	return func(b *builder) { b.logger = logger }
}

// Build writes the Email out as a multipart message. The output always uses
// CRLF line breaks.
//
// The Subject, From, To, and Cc headers are replaced from the fields of the
// Email when those are set. The top-level Content-Type boundary is kept when
// there is one. Otherwise a new boundary is generated and the Content-Type is
// replaced with multipart/mixed. The headers are written in order, then the Text
// and HTML bodies (inside a nested part when MultipartAlternative names a
// boundary), then each attachment as base64, then the terminal delimiter.
//
// The Email is not modified. Build fails with message.ErrArgument if e or its
// Header is nil.
func Build(e *Email, opts ...BuildOption) (string, error) {
	b := defaultBuilder.clone()
	for _, opt := range opts {
		opt(b)
	}

	return b.done(b.build(e))
}

// BuildString reads the given message with ReadString and then builds it
// again with Build.
func BuildString(s string, opts ...BuildOption) (string, error) {
	b := defaultBuilder.clone()
	for _, opt := range opts {
		opt(b)
	}

	e, err := ReadString(s, WithReadLogger(b.logger))
	if err != nil {
		return b.done("", err)
	}

	return b.done(b.build(e))
}

// done calls the build hook and returns the result.
func (b *builder) done(s string, err error) (string, error) {
	if err != nil {
		s = ""
	}

	if b.hook != nil {
		b.hook(s, err)
	}

	return s, err
}

func (b *builder) build(e *Email) (string, error) {
	if e == nil {
		return "", fmt.Errorf("%w: nil email", message.ErrArgument)
	}

	if e.Header == nil {
		return "", fmt.Errorf("%w: email has no header", message.ErrArgument)
	}

	h := e.Header.Clone()

	if e.Subject != "" {
		subject := e.Subject
		if b.encode {
			subject = field.EncodeValue(subject)
		}
		h.SetSubject(subject)
	}

	for _, al := range []struct {
		name string
		list address.List
	}{
		{header.From, e.From},
		{header.To, e.To},
		{header.Cc, e.Cc},
	} {
		if al.list != nil {
			h.Set(al.name, address.FormatList(al.list))
		}
	}

	boundary, err := h.GetBoundary()
	if err != nil || boundary == "" {
		boundary = b.boundary()
		h.Set(header.ContentType, `multipart/mixed;`+header.CRLF+`boundary="`+boundary+`"`)
	}

	var alt string
	if e.MultipartAlternative != nil {
		alt = param.ParseLenient(e.MultipartAlternative.ContentType).Boundary()
		if alt == "" {
			b.logger.Warn().
				Str("content-type", e.MultipartAlternative.ContentType).
				Msg("multipart alternative has no boundary; writing bodies without it")
		}
	}

	sb := &strings.Builder{}
	if _, err := h.WriteTo(sb); err != nil {
		return "", err
	}

	if alt != "" {
		ah := header.New()
		ah.Set(header.ContentType, e.MultipartAlternative.ContentType)

		fmt.Fprintf(sb, "%s--%s%s", header.CRLF, boundary, header.CRLF)
		if _, err := ah.WriteTo(sb); err != nil {
			return "", err
		}
	}

	sb.WriteString(header.CRLF)

	inner := boundary
	if alt != "" {
		inner = alt
	}

	if e.Text != nil {
		b.writeBody(sb, inner, "text/plain", e.Text)
	}

	if e.HTML != nil {
		b.writeBody(sb, inner, "text/html", e.HTML)
	}

	if alt != "" {
		fmt.Fprintf(sb, "--%s--%s", alt, header.CRLF)
	}

	for i := range e.Attachments {
		b.writeAttachment(sb, boundary, i, &e.Attachments[i])
	}

	fmt.Fprintf(sb, "--%s--%s", boundary, header.CRLF)

	return sb.String(), nil
}

// writeBody writes a text or HTML body under the given delimiter.
func (b *builder) writeBody(w io.Writer, delim, mt string, body *Body) {
	fmt.Fprintf(w, "--%s%s", delim, header.CRLF)

	content := body.Text()
	if b.encode && body.Header != nil && body.Header.Len() > 0 {
		_, _ = body.Header.WriteTo(w)
		content = b.encodeBody(body.Header, content)
	} else {
		fmt.Fprintf(w, "%s: %s; charset=%q%s", header.ContentType, mt, charset.UTF8, header.CRLF)
	}

	fmt.Fprint(w, header.CRLF, content, header.CRLF)
}

// encodeBody converts text to the charset of the header and then applies its
// Content-Transfer-Encoding. Text that cannot be converted is written as
// UTF-8.
func (b *builder) encodeBody(h *header.Header, text string) string {
	cs, _ := h.GetCharset()

	raw, err := charset.Encode(cs, text)
	if err != nil {
		b.logger.Warn().Err(err).Str("charset", cs).Msg("unable to encode body; writing it as UTF-8")
		raw = []byte(text)
	}

	sb := &strings.Builder{}
	tw := transfer.ApplyTransferEncoding(h, sb)
	_, _ = tw.Write(raw)
	_ = tw.Close()

	return strings.TrimSuffix(sb.String(), header.CRLF)
}

// writeAttachment writes the i-th attachment under the given delimiter.
func (b *builder) writeAttachment(w io.Writer, delim string, i int, a *Attachment) {
	ct := a.ContentType
	if ct == "" {
		ct = DefaultAttachmentMediaType
	}

	disposition := "attachment"
	if a.Inline {
		disposition = "inline"
	}

	name := a.Filename
	if name == "" {
		name = a.Name
	}
	if name == "" {
		name = fmt.Sprintf("attachment_%d", i+1)
	}

	ah := header.New()
	ah.Set(header.ContentType, ct)
	ah.Set(header.ContentTransferEncoding, transfer.Base64)
	ah.Set(header.ContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, name))
	if a.CID != "" {
		ah.Set(header.ContentID, "<"+a.CID+">")
	}

	fmt.Fprintf(w, "--%s%s", delim, header.CRLF)
	_, _ = ah.WriteTo(w)
	fmt.Fprint(w, header.CRLF)

	data := transfer.EncodeBase64(a.Data.Bytes(), transfer.AttachmentBase64LineLength, header.CRLF)
	if data == "" {
		data = header.CRLF
	}

	fmt.Fprint(w, data, header.CRLF)
}
