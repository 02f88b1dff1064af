package param

import (
	"mime"
	"regexp"
	"sort"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in the
	// Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-disposition header.
	Filename = "filename"

	// Name is the name of the name parameter that may be present in the
	// Content-type header of an attachment.
	Name = "name"
)

// Value represents a parsed parameterized header field, such as is used in the
// Content-type and Content-disposition headers. A Value object is immutable:
// You cannot change it in place. However, a Modify() function is provided to
// perform transformation of a Value into a new Value.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it strictly as a Value and returns
// it. If the body is not a valid RFC 2045 parameterized value, it returns an
// error.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

var (
	lenientParam    = regexp.MustCompile(`;\s*([\w\-\*\.]+)\s*=\s*("[^"]*"?|[^;]*)`)
	lenientBoundary = regexp.MustCompile(`(?i)boundary="?(.+?)"?(\s*;[\s\S]*)?$`)
	lenientCharset  = regexp.MustCompile(`(?i)charset\s*=\W*([\w\-]+)`)
)

// ParseLenient parses the field body without failing. A strict parse is
// attempted first. When that fails, the primary value is taken to be
// everything before the first semicolon and the parameters are scraped out as
// well as possible, with special care given to boundary and charset, which
// are needed to read a message at all.
func ParseLenient(v string) *Value {
	if pv, err := Parse(v); err == nil {
		return pv
	}

	mt := v
	if ix := strings.IndexByte(v, ';'); ix >= 0 {
		mt = v[:ix]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))

	ps := map[string]string{}
	for _, m := range lenientParam.FindAllStringSubmatch(v, -1) {
		k := strings.ToLower(m[1])
		pv := strings.TrimSpace(m[2])
		pv = strings.TrimSuffix(strings.TrimPrefix(pv, `"`), `"`)
		ps[k] = pv
	}

	if m := lenientBoundary.FindStringSubmatch(v); m != nil {
		ps[Boundary] = strings.TrimSpace(m[1])
	}

	if m := lenientCharset.FindStringSubmatch(v); m != nil {
		ps[Charset] = m[1]
	}

	return &Value{mt, ps}
}

// New creates a new parameterized header field with no parameters.
func New(v string) *Value {
	return &Value{v, map[string]string{}}
}

// NewWithParams creates a new parameterized header field with the given
// parameters.
func NewWithParams(v string, ps map[string]string) *Value {
	pv := New(v)
	for k, p := range ps {
		pv.ps[k] = p
	}
	return pv
}

// Modifier changes a Value that Modify has already cloned.
type Modifier func(*Value)

// Change replaces the primary value.
func Change(value string) Modifier {
	return func(pv *Value) { pv.v = value }
}

// Set adds or replaces the named parameter.
func Set(name, value string) Modifier {
	return func(pv *Value) { pv.ps[strings.ToLower(name)] = value }
}

// Delete drops the named parameter.
func Delete(name string) Modifier {
	return func(pv *Value) { delete(pv.ps, strings.ToLower(name)) }
}

// Modify returns a copy of pv with each change applied in turn; pv itself is
// left alone.
//
//	ct := param.New("multipart/mixed")
//	ct = param.Modify(ct, param.Change("multipart/alternative"), param.Set(param.Boundary, "b"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value is the part before the first semicolon.
func (pv *Value) Value() string { return pv.v }

// Disposition reads Value as a Content-Disposition: "inline", "attachment".
func (pv *Value) Disposition() string { return pv.v }

// MediaType reads Value as a Content-Type: "text/plain", "multipart/mixed".
func (pv *Value) MediaType() string { return pv.v }

// split breaks the media type at its slash.
func (pv *Value) split() (string, string, bool) {
	return strings.Cut(pv.v, "/")
}

// Type is the media type before the slash, "image" for "image/png". Without a
// slash it is empty.
func (pv *Value) Type() string {
	if t, _, ok := pv.split(); ok {
		return t
	}
	return ""
}

// Subtype is the media type after the slash, "png" for "image/png".
func (pv *Value) Subtype() string {
	_, st, _ := pv.split()
	return st
}

// IsMultipart reports a multipart/* media type.
func (pv *Value) IsMultipart() bool {
	return strings.EqualFold(pv.Type(), "multipart")
}

// Parameters exposes the parameter map itself. Treat it as read-only.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter looks up a parameter without regard to case.
func (pv *Value) Parameter(k string) string {
	return pv.ps[strings.ToLower(k)]
}

func (pv *Value) Filename() string { return pv.ps[Filename] }
func (pv *Value) Charset() string { return pv.ps[Charset] }
func (pv *Value) Boundary() string { return pv.ps[Boundary] }

// Name is the name parameter of a Content-Type, or else the filename
// parameter, so it works on either header of an attachment.
func (pv *Value) Name() string {
	if n := pv.ps[Name]; n != "" {
		return n
	}
	return pv.ps[Filename]
}

// quote wraps parameter values that contain tspecials or whitespace in double
// quotes.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, "()<>@,;:\\\"/[]?= \t") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// String returns the serialized value of the Value including the primary value
// and all parameters. Parameters are sorted by name and quoted when needed.
func (pv *Value) String() string {
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, len(pv.ps)+1)
	parts[0] = pv.v

	for n, k := range pks {
		parts[n+1] = k + "=" + quote(pv.ps[k])
	}

	return strings.Join(parts, "; ")
}

// Bytes is String as a byte slice.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone copies the parameter map as well.
func (pv *Value) Clone() *Value {
	c := &Value{v: pv.v, ps: make(map[string]string, len(pv.ps))}
	for k, v := range pv.ps {
		c.ps[k] = v
	}
	return c
}
