package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zostay/go-eml"
	"github.com/zostay/go-eml/internal/logger"
	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/transfer"
)

// Ways attachment data is written in a document.
const (
	dataText   = "text"
	dataBase64 = "base64"
)

type fieldDoc struct {
	Name string `json:"name" yaml:"name"`
	Body string `json:"body" yaml:"body"`
}

type partDoc struct {
	Header   []fieldDoc `json:"header" yaml:"header"`
	Boundary string     `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Body     *string    `json:"body,omitempty" yaml:"body,omitempty"`
	Parts    []partDoc  `json:"parts,omitempty" yaml:"parts,omitempty"`
}

type bodyDoc struct {
	Text   string     `json:"text" yaml:"text"`
	Header []fieldDoc `json:"header,omitempty" yaml:"header,omitempty"`
}

type attachmentDoc struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Inline      bool   `json:"inline,omitempty" yaml:"inline,omitempty"`
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	MimeType    string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	CID         string `json:"cid,omitempty" yaml:"cid,omitempty"`
	Encoding    string `json:"encoding" yaml:"encoding"`
	Data        string `json:"data" yaml:"data"`
}

type emailDoc struct {
	Date                 string          `json:"date,omitempty" yaml:"date,omitempty"`
	DateRaw              string          `json:"dateRaw,omitempty" yaml:"dateRaw,omitempty"`
	Subject              string          `json:"subject,omitempty" yaml:"subject,omitempty"`
	From                 address.List    `json:"from,omitempty" yaml:"from,omitempty"`
	To                   address.List    `json:"to,omitempty" yaml:"to,omitempty"`
	Cc                   address.List    `json:"cc,omitempty" yaml:"cc,omitempty"`
	Header               []fieldDoc      `json:"header" yaml:"header"`
	MultipartAlternative string          `json:"multipartAlternative,omitempty" yaml:"multipartAlternative,omitempty"`
	Text                 *bodyDoc        `json:"text,omitempty" yaml:"text,omitempty"`
	HTML                 *bodyDoc        `json:"html,omitempty" yaml:"html,omitempty"`
	Attachments          []attachmentDoc `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

func headerDoc(h *header.Header) []fieldDoc {
	if h == nil {
		return nil
	}

	var fs []fieldDoc
	for _, f := range h.ListFields() {
		for _, b := range f.Bodies() {
			fs = append(fs, fieldDoc{Name: f.Name(), Body: b})
		}
	}
	return fs
}

func docHeader(fs []fieldDoc) *header.Header {
	h := header.New()
	for _, f := range fs {
		_ = h.Add(f.Name, f.Body)
	}
	return h
}

// newPartDoc describes the part tree. With decode, leaf bodies have their
// Content-Transfer-Encoding removed.
func newPartDoc(p message.Part, decode bool) (partDoc, error) {
	d := partDoc{
		Header:   headerDoc(p.GetHeader()),
		Boundary: p.Boundary(),
	}

	if p.HasBody() {
		body := p.GetBody()
		if decode {
			b, err := io.ReadAll(transfer.ApplyTransferDecoding(p.GetHeader(), p.GetReader()))
			if err != nil {
				return d, fmt.Errorf("unable to decode part body: %w", err)
			}
			body = string(b)
		}
		d.Body = &body
	}

	for _, sub := range p.GetParts() {
		sd, err := newPartDoc(sub, decode)
		if err != nil {
			return d, err
		}
		d.Parts = append(d.Parts, sd)
	}

	return d, nil
}

func newBodyDoc(b *eml.Body) *bodyDoc {
	if b == nil {
		return nil
	}
	return &bodyDoc{Text: b.Text(), Header: headerDoc(b.Header)}
}

func newEmailDoc(e *eml.Email) *emailDoc {
	d := &emailDoc{
		DateRaw: e.Date.Raw,
		Subject: e.Subject,
		From:    e.From,
		To:      e.To,
		Cc:      e.Cc,
		Header:  headerDoc(e.Header),
		Text:    newBodyDoc(e.Text),
		HTML:    newBodyDoc(e.HTML),
	}

	if !e.Date.Time.IsZero() {
		d.Date = e.Date.Time.Format(time.RFC3339)
	}

	if e.MultipartAlternative != nil {
		d.MultipartAlternative = e.MultipartAlternative.ContentType
	}

	for _, a := range e.Attachments {
		ad := attachmentDoc{
			Name:        a.Name,
			ContentType: a.ContentType,
			Inline:      a.Inline,
			Filename:    a.Filename,
			MimeType:    a.MimeType,
			ID:          a.ID,
			CID:         a.CID,
			Encoding:    dataText,
			Data:        a.Data.Text(),
		}

		if a.Data.IsBinary() {
			ad.Encoding = dataBase64
			ad.Data = base64.StdEncoding.EncodeToString(a.Data.Bytes())
		}

		d.Attachments = append(d.Attachments, ad)
	}

	return d
}

func docBody(d *bodyDoc) *eml.Body {
	if d == nil {
		return nil
	}

	b := eml.NewTextBody(d.Text)
	if len(d.Header) > 0 {
		b.Header = docHeader(d.Header)
	}
	return b
}

// email converts a document back into an Email. The dates are ignored since
// Build writes the Date header as it appears in the header list.
func (d *emailDoc) email() (*eml.Email, error) {
	e := &eml.Email{
		Subject: d.Subject,
		From:    d.From,
		To:      d.To,
		Cc:      d.Cc,
		Header:  docHeader(d.Header),
		Text:    docBody(d.Text),
		HTML:    docBody(d.HTML),
	}

	if d.MultipartAlternative != "" {
		e.MultipartAlternative = &eml.Alternative{ContentType: d.MultipartAlternative}
	}

	for i, ad := range d.Attachments {
		a := eml.Attachment{
			Name:        ad.Name,
			ContentType: ad.ContentType,
			Inline:      ad.Inline,
			Filename:    ad.Filename,
			MimeType:    ad.MimeType,
			ID:          ad.ID,
			CID:         ad.CID,
		}

		switch ad.Encoding {
		case dataBase64:
			b, err := base64.StdEncoding.DecodeString(ad.Data)
			if err != nil {
				return nil, fmt.Errorf("attachment %d: %w", i+1, err)
			}
			a.Data = transfer.NewBinary(b)
		case dataText, "":
			a.Data = transfer.NewText(ad.Data)
		default:
			return nil, fmt.Errorf("attachment %d: unknown data encoding %q", i+1, ad.Encoding)
		}

		e.Attachments = append(e.Attachments, a)
	}

	return e, nil
}

// writeDocument writes v to w in the configured output format.
func writeDocument(w io.Writer, v any) error {
	switch settings.Output.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	return fmt.Errorf("unknown output format %q", settings.Output.Format)
}

// readInput returns the contents of the named file or of stdin when the name
// is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(name)
}

// parseOptions returns the parser options selected by the configuration.
func parseOptions(cmd *cobra.Command, extra ...message.ParseOption) []message.ParseOption {
	opts := []message.ParseOption{
		message.WithMaxDepth(settings.Parse.MaxDepth),
		message.WithMaxLineLength(settings.Parse.MaxLineLength),
		message.WithLogger(logger.FromContext(cmd.Context())),
	}
	return append(opts, extra...)
}

// parseFile parses the named file with the configured options.
func parseFile(cmd *cobra.Command, name string, extra ...message.ParseOption) (message.Generic, error) {
	in, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}

	return message.Parse(bytes.NewReader(in), parseOptions(cmd, extra...)...)
}
