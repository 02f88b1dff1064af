package eml_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	gomessage "github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-eml"
	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/transfer"
)

func fixedBoundary(b string) eml.BuildOption {
	return eml.WithBoundaryGenerator(func() string { return b })
}

func simpleEmail() *eml.Email {
	return &eml.Email{
		Header:  header.New(),
		Subject: "Hi",
		From:    address.List{{Name: "A", Email: "a@x.com"}},
		To:      address.List{{Email: "b@y.com"}},
		Text:    eml.NewTextBody("hello"),
		HTML:    eml.NewTextBody("<p>hello</p>"),
		Attachments: []eml.Attachment{
			{
				Name:        "a.bin",
				ContentType: "application/octet-stream",
				Data:        transfer.NewBinary([]byte("abc")),
			},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	s, err := eml.Build(simpleEmail(), fixedBoundary("BOUNDARY"))
	require.NoError(t, err)

	const expect = "Subject: Hi\r\n" +
		"From: \"A\" <a@x.com>\r\n" +
		"To: <b@y.com>\r\n" +
		"Content-Type: multipart/mixed;\r\n" +
		"  boundary=\"BOUNDARY\"\r\n" +
		"\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/html; charset=\"utf-8\"\r\n" +
		"\r\n" +
		"<p>hello</p>\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"Content-Disposition: attachment; filename=\"a.bin\"\r\n" +
		"\r\n" +
		"YWJj\r\n" +
		"\r\n" +
		"--BOUNDARY--\r\n"

	assert.Equal(t, expect, s)
}

func TestBuild_RoundTrip(t *testing.T) {
	t.Parallel()

	in := simpleEmail()
	s, err := eml.Build(in)
	require.NoError(t, err)

	out, err := eml.ReadString(s)
	require.NoError(t, err)

	assert.Equal(t, in.Subject, out.Subject)
	assert.Equal(t, in.From, out.From)
	assert.Equal(t, in.To, out.To)
	assert.Nil(t, out.Cc)
	assert.Equal(t, "hello", out.Text.Text())
	assert.Equal(t, "<p>hello</p>", out.HTML.Text())

	require.Len(t, out.Attachments, 1)
	assert.Equal(t, "a.bin", out.Attachments[0].Filename)
	assert.Equal(t, []byte("abc"), out.Attachments[0].Data.Bytes())

	boundary, err := out.Header.GetBoundary()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(boundary, eml.BoundaryPrefix))
}

func TestBuild_Alternative(t *testing.T) {
	t.Parallel()

	in := simpleEmail()
	in.MultipartAlternative = &eml.Alternative{ContentType: `multipart/alternative; boundary="ALT"`}

	s, err := eml.Build(in, fixedBoundary("OUTER"))
	require.NoError(t, err)

	assert.Contains(t, s, "\r\n\r\n--OUTER\r\n"+
		"Content-Type: multipart/alternative; boundary=\"ALT\"\r\n"+
		"\r\n"+
		"--ALT\r\n"+
		"Content-Type: text/plain; charset=\"utf-8\"\r\n")
	assert.Contains(t, s, "<p>hello</p>\r\n--ALT--\r\n--OUTER\r\n")
	assert.True(t, strings.HasSuffix(s, "--OUTER--\r\n"))

	msg, err := message.ParseString(s)
	require.NoError(t, err)

	parts := msg.GetParts()
	require.Len(t, parts, 2)
	require.True(t, parts[0].IsMultipart())
	assert.Len(t, parts[0].GetParts(), 2)

	out, err := eml.Read(msg)
	require.NoError(t, err)
	require.NotNil(t, out.MultipartAlternative)
	assert.Equal(t, in.MultipartAlternative.ContentType, out.MultipartAlternative.ContentType)
	assert.Equal(t, "hello", out.Text.Text())
	assert.Equal(t, "<p>hello</p>", out.HTML.Text())
	assert.Len(t, out.Attachments, 1)
}

func TestBuild_KeepsBoundary(t *testing.T) {
	t.Parallel()

	in := simpleEmail()
	in.Header.Set(header.ContentType, `multipart/mixed; boundary="kept"`)

	s, err := eml.Build(in, eml.WithBoundaryGenerator(func() string {
		t.Fatal("boundary generator should not be called")
		return ""
	}))
	require.NoError(t, err)

	assert.Contains(t, s, "Content-Type: multipart/mixed; boundary=\"kept\"\r\n")
	assert.True(t, strings.HasSuffix(s, "--kept--\r\n"))
}

func TestBuild_Attachments(t *testing.T) {
	t.Parallel()

	in := &eml.Email{
		Header: header.New(),
		Attachments: []eml.Attachment{
			{Data: transfer.NewBinary([]byte(strings.Repeat("x", 100)))},
			{ContentType: "image/png", Filename: "pic.png", Inline: true, CID: "pic@x", Data: transfer.NewBinary([]byte{0x89, 'P', 'N', 'G'})},
			{Name: "empty.txt", ContentType: "text/plain"},
		},
	}

	s, err := eml.Build(in, fixedBoundary("B"))
	require.NoError(t, err)

	assert.Contains(t, s, "Content-Type: application/octet-stream\r\n"+
		"Content-Transfer-Encoding: base64\r\n"+
		"Content-Disposition: attachment; filename=\"attachment_1\"\r\n")
	assert.Contains(t, s, "Content-Disposition: inline; filename=\"pic.png\"\r\n"+
		"Content-ID: <pic@x>\r\n")
	assert.Contains(t, s, "filename=\"empty.txt\"\r\n\r\n\r\n\r\n--B--\r\n")

	// 100 bytes is 136 base64 characters, wrapped at 72
	for _, line := range strings.Split(s, "\r\n") {
		assert.LessOrEqual(t, len(line), 72)
	}

	out, err := eml.ReadString(s)
	require.NoError(t, err)

	require.Len(t, out.Attachments, 2)
	assert.Equal(t, strings.Repeat("x", 100), string(out.Attachments[0].Data.Bytes()))
	assert.Equal(t, "attachment_1", out.Attachments[0].Filename)

	pic := out.Attachments[1]
	assert.True(t, pic.Inline)
	assert.Equal(t, "pic@x", pic.CID)
	assert.Equal(t, "image/png", pic.MimeType)

	// the empty text part takes the place of the missing Text body
	require.NotNil(t, out.Text)
	assert.Equal(t, "", out.Text.Text())
}

func TestBuild_Encode(t *testing.T) {
	t.Parallel()

	text := header.New()
	text.Set(header.ContentType, "text/plain; charset=utf-8")
	text.Set(header.ContentTransferEncoding, transfer.Base64)

	html := header.New()
	html.Set(header.ContentType, "text/html; charset=utf-8")
	html.Set(header.ContentTransferEncoding, transfer.QuotedPrintable)

	in := &eml.Email{
		Header:  header.New(),
		Subject: "你好",
		Text:    &eml.Body{Content: transfer.NewText("hello"), Header: text},
		HTML:    &eml.Body{Content: transfer.NewText("<p>café</p>"), Header: html},
	}

	s, err := eml.Build(in, eml.WithEncode(), fixedBoundary("B"))
	require.NoError(t, err)

	assert.NotContains(t, s, "你好")
	assert.Contains(t, s, "Content-Transfer-Encoding: base64\r\n\r\naGVsbG8=\r\n--B\r\n")
	assert.Contains(t, s, "<p>caf=C3=A9</p>\r\n--B--\r\n")

	out, err := eml.ReadString(s)
	require.NoError(t, err)
	assert.Equal(t, "你好", out.Subject)
	assert.Equal(t, "hello", out.Text.Text())
	assert.Equal(t, "<p>café</p>", out.HTML.Text())

	// without WithEncode, the stored headers are ignored
	plain, err := eml.Build(in, fixedBoundary("B"))
	require.NoError(t, err)
	assert.Contains(t, plain, "Subject: 你好\r\n")
	assert.Contains(t, plain, "\r\n\r\nhello\r\n")
	assert.NotContains(t, plain, "Content-Transfer-Encoding")
}

func TestBuild_DoesNotModify(t *testing.T) {
	t.Parallel()

	in := simpleEmail()
	in.Header.Set(header.Subject, "Old")

	_, err := eml.Build(in)
	require.NoError(t, err)

	s, err := in.Header.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "Old", s)
	assert.Equal(t, 1, in.Header.Len())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	calls := 0
	hook := eml.WithBuildHook(func(s string, err error) {
		calls++
		assert.Equal(t, "", s)
		assert.ErrorIs(t, err, message.ErrArgument)
	})

	_, err := eml.Build(nil, hook)
	assert.ErrorIs(t, err, message.ErrArgument)

	_, err = eml.Build(&eml.Email{}, hook)
	assert.ErrorIs(t, err, message.ErrArgument)

	assert.Equal(t, 2, calls)
}

func TestBuildString(t *testing.T) {
	t.Parallel()

	s, err := eml.BuildString(mixedMsg)
	require.NoError(t, err)

	// the original boundary is kept
	assert.True(t, strings.HasSuffix(s, "--mixed--\r\n"))

	e, err := eml.ReadString(s)
	require.NoError(t, err)
	assert.Equal(t, "你好 World", e.Subject)
	assert.Equal(t, "café", e.Text.Text())
	assert.Equal(t, "你好", e.HTML.Text())
	require.Len(t, e.Attachments, 2)
	assert.Equal(t, []byte("%PDF-"), e.Attachments[0].Data.Bytes())
	assert.True(t, e.Attachments[1].Inline)
	assert.Equal(t, "pic@example", e.Attachments[1].CID)
}

func TestBuild_GoMessage(t *testing.T) {
	t.Parallel()

	in := simpleEmail()
	in.MultipartAlternative = &eml.Alternative{ContentType: `multipart/alternative; boundary="ALT"`}

	s, err := eml.Build(in)
	require.NoError(t, err)

	entity, err := gomessage.Read(strings.NewReader(s))
	require.NoError(t, err)

	mt, _, err := entity.Header.ContentType()
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mt)

	mr := entity.MultipartReader()
	require.NotNil(t, mr)

	var seen []string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		mt, _, err := part.Header.ContentType()
		require.NoError(t, err)
		seen = append(seen, mt)

		switch mt {
		case "multipart/alternative":
			amr := part.MultipartReader()
			require.NotNil(t, amr)

			text, err := amr.NextPart()
			require.NoError(t, err)
			body, err := io.ReadAll(text.Body)
			require.NoError(t, err)
			assert.Equal(t, "hello", string(body))

		case "application/octet-stream":
			ah := mail.AttachmentHeader{Header: part.Header}
			fn, err := ah.Filename()
			require.NoError(t, err)
			assert.Equal(t, "a.bin", fn)

			body, err := io.ReadAll(part.Body)
			require.NoError(t, err)
			assert.Equal(t, "abc", string(body))
		}
	}

	assert.Equal(t, []string{"multipart/alternative", "application/octet-stream"}, seen)
}
