package header

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// layoutsInTheWild are tried after RFC 5322 and dateparse have both given up.
var layoutsInTheWild = []string{
	"Mon Jan 02 15:04:05 2006 MST",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// ParseTime parses a date field body. RFC 5322 is tried first, then anything
// dateparse recognizes, then a few layouts mailers have been caught writing.
// Folding whitespace is collapsed before any of that.
func ParseTime(body string) (time.Time, error) {
	body = strings.Join(strings.Fields(body), " ")

	if t, err := mail.ParseDate(body); err == nil {
		return t, nil
	}

	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}

	for _, layout := range layoutsInTheWild {
		if t, err := time.Parse(layout, body); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime parses the first named field with ParseTime. A missing field is
// ErrNoSuchField.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.GetFirst(name)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(body)
}

// SetTime replaces the named field with t in time.RFC1123Z.
func (h *Header) SetTime(name string, t time.Time) {
	h.Set(name, t.Format(time.RFC1123Z))
}

// GetDate is GetTime(Date).
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate is SetTime(Date, d).
func (h *Header) SetDate(d time.Time) {
	h.SetTime(Date, d)
}
