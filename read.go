package eml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/charset"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/header/field"
	"github.com/zostay/go-eml/message/header/param"
	"github.com/zostay/go-eml/message/transfer"
	"github.com/zostay/go-eml/message/walk"
)

// DefaultMediaType is assumed for parts without a Content-Type.
const DefaultMediaType = "text/plain"

type reader struct {
	logger    zerolog.Logger
	hook      func(*Email, error)
	parseOpts []message.ParseOption
}

var defaultReader = &reader{
	logger: zerolog.Nop(),
}

func (rd *reader) clone() *reader {
	r := *rd
	r.parseOpts = append([]message.ParseOption(nil), rd.parseOpts...)
	return &r
}

// ReadOption modifies how Read and ReadString work.
type ReadOption func(rd *reader)

// WithReadLogger sets the logger Read reports anomalies to, such as content
// that cannot be decoded or a Date that cannot be parsed.
func WithReadLogger(logger zerolog.Logger) ReadOption {
	return func(rd *reader) { rd.logger = logger }
}

// WithReadHook sets a function called with the result of Read just before it
// is returned.
func WithReadHook(hook func(*Email, error)) ReadOption {
	return func(rd *reader) { rd.hook = hook }
}

// WithParseOptions sets the options ReadString passes to message.ParseString.
func WithParseOptions(opts ...message.ParseOption) ReadOption {
	return func(rd *reader) { rd.parseOpts = append(rd.parseOpts, opts...) }
}

var inlineDisposition = regexp.MustCompile(`(?i)^\s*inline`)

// Read flattens a parsed message into an Email.
//
// Every leaf part with a body is decoded according to its
// Content-Transfer-Encoding and charset. The first text/html part becomes the
// HTML body and the first text/plain part becomes the Text body, both as
// UTF-8 text. Every other leaf becomes an Attachment. The first nested
// multipart part is recorded as the MultipartAlternative.
//
// The From, To, and Cc headers are parsed as address lists and the Subject
// has its encoded words decoded. A Date that cannot be parsed is kept in
// Date.Raw only.
//
// Read does not modify the message. It fails with message.ErrArgument if msg
// is nil.
func Read(msg message.Generic, opts ...ReadOption) (*Email, error) {
	rd := defaultReader.clone()
	for _, opt := range opts {
		opt(rd)
	}

	return rd.done(rd.read(msg))
}

// ReadString parses the given message and then reads it as Read does.
func ReadString(s string, opts ...ReadOption) (*Email, error) {
	rd := defaultReader.clone()
	for _, opt := range opts {
		opt(rd)
	}

	msg, err := message.ParseString(s, rd.parseOpts...)
	if err != nil {
		return rd.done(nil, err)
	}

	return rd.done(rd.read(msg))
}

// done calls the read hook and returns the result.
func (rd *reader) done(e *Email, err error) (*Email, error) {
	if err != nil {
		e = nil
	}

	if rd.hook != nil {
		rd.hook(e, err)
	}

	return e, err
}

func (rd *reader) read(msg message.Generic) (*Email, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", message.ErrArgument)
	}

	h := msg.GetHeader()
	e := &Email{Header: h.Clone()}

	if raw, err := h.GetFirst(header.Date); err == nil {
		e.Date.Raw = raw
		if t, err := header.ParseTime(raw); err == nil {
			e.Date.Time = t
		} else {
			rd.logger.Warn().Err(err).Msg("unable to parse the Date header")
		}
	}

	if raw, err := h.GetFirst(header.Subject); err == nil {
		e.Subject = field.DecodeValue(raw)
	}

	e.From = rd.addresses(h, header.From)
	e.To = rd.addresses(h, header.To)
	e.Cc = rd.addresses(h, header.Cc)

	err := walk.AndProcess(
		func(part message.Part, parents []message.Part) error {
			switch p := part.(type) {
			case *message.Multipart:
				rd.multipart(e, p, parents)
			case *message.Opaque:
				rd.addPart(e, p)
			}
			return nil
		}, msg,
	)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// addresses parses the named address header. It returns nil when the header
// is missing or holds no addresses.
func (rd *reader) addresses(h *header.Header, name string) address.List {
	raw, err := h.GetFirst(name)
	if err != nil {
		return nil
	}

	l := address.ParseList(raw)
	if l.Kind() == address.None {
		return nil
	}

	return l
}

func (rd *reader) multipart(e *Email, mm *message.Multipart, parents []message.Part) {
	if len(parents) == 0 {
		return
	}

	ct, _ := mm.GetFirst(header.ContentType)
	if e.MultipartAlternative != nil {
		rd.logger.Debug().Str("content-type", ct).Msg("ignoring additional nested multipart")
		return
	}

	e.MultipartAlternative = &Alternative{ContentType: ct}
}

// bodyHeader copies the headers describing the content of a part.
func bodyHeader(h *header.Header) *header.Header {
	bh := header.New()
	for _, name := range []string{header.ContentType, header.ContentTransferEncoding} {
		if bodies, err := h.GetAll(name); err == nil {
			bh.SetAll(name, bodies...)
		}
	}
	return bh
}

func (rd *reader) addPart(e *Email, m *message.Opaque) {
	if !m.HasBody() {
		return
	}

	ct, err := m.GetFirst(header.ContentType)
	if err != nil {
		ct = DefaultMediaType
	}

	pv := param.ParseLenient(ct)
	cs := charset.Normalize(pv.Charset())
	cte, _ := m.GetTransferEncoding()

	content, err := transfer.DecodeContentErr(m.GetBody(), cte, cs)
	if err != nil {
		rd.logger.Warn().
			Err(err).
			Str("content-type", pv.MediaType()).
			Str("content-transfer-encoding", cte).
			Msg("unable to decode content; keeping it as is")
	}

	mt := pv.MediaType()
	switch {
	case mt == "text/html" && e.HTML == nil:
		e.HTML = &Body{
			Content: transfer.NewText(content.Text()),
			Header:  bodyHeader(&m.Header),
		}
		return
	case mt == "text/plain" && e.Text == nil:
		e.Text = &Body{
			Content: transfer.NewText(content.Text()),
			Header:  bodyHeader(&m.Header),
		}
		return
	}

	a := Attachment{
		ContentType: ct,
		Data:        content,
		MimeType:    mt,
	}

	if cd, err := m.GetFirst(header.ContentDisposition); err == nil {
		dv := param.ParseLenient(cd)
		a.Name = dv.Name()
		a.Filename = dv.Filename()
		a.Inline = inlineDisposition.MatchString(cd)
	}

	if a.Name == "" {
		a.Name = pv.Name()
	}

	if id, err := m.GetContentID(); err == nil {
		a.ID = id
		a.CID = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(id), "<"), ">")
	}

	e.Attachments = append(e.Attachments, a)
}
