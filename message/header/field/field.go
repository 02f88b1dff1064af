// Package field holds the fields of an email header. A field is a name and a
// Value, which is either a Single value, when the field appeared once, or a
// Multi value, when the field was repeated. The package also provides the
// codec for RFC 2047 encoded words found in field bodies.
package field

import "strings"

// Break is the line break used to join folded continuation lines into a field
// body.
const Break = "\r\n"

// Value is the body of a field. It is implemented by Single and Multi only.
type Value interface {
	// Values returns every body held, in the order they were added.
	Values() []string

	// First returns the first body held.
	First() string

	// Len returns the number of bodies held.
	Len() int

	isValue()
}

// Single is the Value of a field that appeared exactly once.
type Single string

// Values returns a slice holding the one body.
func (s Single) Values() []string { return []string{string(s)} }

// First returns the body.
func (s Single) First() string { return string(s) }

// Len always returns 1.
func (s Single) Len() int { return 1 }

func (Single) isValue() {}

// Multi is the Value of a field that was repeated. The bodies are held in the
// order they appeared.
type Multi []string

// Values returns a copy of the bodies.
func (m Multi) Values() []string {
	vs := make([]string, len(m))
	copy(vs, m)
	return vs
}

// First returns the first body or an empty string.
func (m Multi) First() string {
	if len(m) == 0 {
		return ""
	}
	return m[0]
}

// Len returns the number of bodies.
func (m Multi) Len() int { return len(m) }

func (Multi) isValue() {}

// Field is a named header field.
type Field struct {
	name  string
	value Value
}

// New returns a field with a Single value.
func New(name, body string) *Field {
	return &Field{name: name, value: Single(body)}
}

// NewMulti returns a field holding all the given bodies. With exactly one body
// the value is a Single.
func NewMulti(name string, bodies ...string) *Field {
	f := &Field{name: name}
	f.SetBodies(bodies...)
	return f
}

// Name returns the name of the field as it first appeared.
func (f *Field) Name() string {
	return f.name
}

// SetName renames the field.
func (f *Field) SetName(name string) {
	f.name = name
}

// Is returns true if the field has the given name, compared without regard to
// case.
func (f *Field) Is(name string) bool {
	return strings.EqualFold(f.name, name)
}

// Value returns the Single or Multi value of the field.
func (f *Field) Value() Value {
	return f.value
}

// Body returns the first body of the field.
func (f *Field) Body() string {
	if f.value == nil {
		return ""
	}
	return f.value.First()
}

// Bodies returns every body of the field.
func (f *Field) Bodies() []string {
	if f.value == nil {
		return nil
	}
	return f.value.Values()
}

// Len returns the number of bodies held by the field.
func (f *Field) Len() int {
	if f.value == nil {
		return 0
	}
	return f.value.Len()
}

// Add appends another body to the field. The first repeat turns a Single value
// into a Multi.
func (f *Field) Add(body string) {
	switch v := f.value.(type) {
	case nil:
		f.value = Single(body)
	case Single:
		f.value = Multi{string(v), body}
	case Multi:
		f.value = append(v, body)
	}
}

// SetBody replaces all bodies with a single one.
func (f *Field) SetBody(body string) {
	f.value = Single(body)
}

// SetBodies replaces all bodies. Passing exactly one body stores a Single.
func (f *Field) SetBodies(bodies ...string) {
	switch len(bodies) {
	case 0:
		f.value = nil
	case 1:
		f.value = Single(bodies[0])
	default:
		f.value = Multi(append([]string(nil), bodies...))
	}
}

// AppendContinuation adds a folded continuation line to the most recently
// added body. The line is joined with Break.
func (f *Field) AppendContinuation(line string) {
	switch v := f.value.(type) {
	case nil:
		f.value = Single(line)
	case Single:
		f.value = Single(string(v) + Break + line)
	case Multi:
		nv := v.Values()
		nv[len(nv)-1] += Break + line
		f.value = Multi(nv)
	}
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := &Field{name: f.name}
	if m, isMulti := f.value.(Multi); isMulti {
		c.value = Multi(m.Values())
	} else {
		c.value = f.value
	}
	return c
}
