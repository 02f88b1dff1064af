package header

import (
	"strings"

	"github.com/zostay/go-eml/message/header/param"
)

// GetParamValue leniently parses the first named field as a param.Value. A
// missing field is ErrNoSuchField.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.GetFirst(name)
	if err != nil {
		return nil, err
	}
	return param.ParseLenient(body), nil
}

// SetParamValue replaces the named field with v.
func (h *Header) SetParamValue(name string, v *param.Value) {
	h.Set(name, v.String())
}

func (h *Header) getParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	v := pv.Parameter(p)
	if v == "" {
		return "", ErrNoSuchFieldParameter
	}
	return v, nil
}

// setParam requires the field to exist already.
func (h *Header) setParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}
	h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))
	return nil
}

// GetContentType returns Content-Type as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces Content-Type.
func (h *Header) SetContentType(v *param.Value) {
	h.SetParamValue(ContentType, v)
}

// GetMediaType returns just the lowercased media type of Content-Type.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// SetMediaType changes the media type of Content-Type and keeps its
// parameters. Content-Type is created when missing.
func (h *Header) SetMediaType(mt string) {
	pv, err := h.GetContentType()
	if err != nil {
		h.SetContentType(param.New(mt))
		return
	}
	h.SetContentType(param.Modify(pv, param.Change(mt)))
}

// GetCharset returns the charset parameter of Content-Type. The error is
// ErrNoSuchField without Content-Type and ErrNoSuchFieldParameter without the
// parameter.
func (h *Header) GetCharset() (string, error) {
	return h.getParam(ContentType, param.Charset)
}

// SetCharset fails with ErrNoSuchField when Content-Type is missing.
func (h *Header) SetCharset(c string) error {
	return h.setParam(ContentType, param.Charset, c)
}

// GetBoundary returns the boundary parameter of Content-Type, with the same
// errors as GetCharset.
func (h *Header) GetBoundary() (string, error) {
	return h.getParam(ContentType, param.Boundary)
}

// SetBoundary fails with ErrNoSuchField when Content-Type is missing.
func (h *Header) SetBoundary(b string) error {
	return h.setParam(ContentType, param.Boundary, b)
}

// GetContentDisposition returns Content-Disposition as a param.Value.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// GetPresentation returns the disposition, such as "inline" or "attachment".
func (h *Header) GetPresentation() (string, error) {
	pv, err := h.GetContentDisposition()
	if err != nil {
		return "", err
	}
	return pv.Disposition(), nil
}

// GetFilename returns the filename parameter of Content-Disposition.
func (h *Header) GetFilename() (string, error) {
	return h.getParam(ContentDisposition, param.Filename)
}

// GetTransferEncoding returns Content-Transfer-Encoding trimmed and
// lowercased.
func (h *Header) GetTransferEncoding() (string, error) {
	cte, err := h.GetFirst(ContentTransferEncoding)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(cte)), nil
}

// SetTransferEncoding replaces Content-Transfer-Encoding.
func (h *Header) SetTransferEncoding(cte string) {
	h.Set(ContentTransferEncoding, cte)
}

// GetContentID returns Content-ID with its angle brackets.
func (h *Header) GetContentID() (string, error) {
	return h.GetFirst(ContentID)
}

// GetSubject returns the raw Subject, encoded words and all. Repeated Subject
// fields give ErrManyFields along with the first.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// SetSubject replaces Subject.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, s)
}
