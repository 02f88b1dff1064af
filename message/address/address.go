// Package address turns the body of an address header (From, To, Cc, etc.)
// into name/email pairs and back again.
//
// The parser here is deliberately forgiving. Real mail carries address lists
// that no strict RFC 5322 parser will accept, so fragments that cannot be made
// sense of are dropped rather than failing the whole list. When you need a
// strict check, use Address.Mailbox, which validates with
// github.com/zostay/go-addr.
package address

import (
	"regexp"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-eml/message/header/field"
)

// Kind describes how many addresses a List holds. Callers that need to tell an
// absent value from a single address from a list switch on this.
type Kind int

// The kinds of address lists.
const (
	None Kind = iota // no addresses found
	One              // exactly one address
	Many             // two or more addresses
)

// String returns a name for the kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case One:
		return "one"
	default:
		return "many"
	}
}

// Address is a single name/email pair. Either may be empty, but not both.
type Address struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// IsZero returns true when neither the name nor the email is set.
func (a Address) IsZero() bool {
	return a.Name == "" && a.Email == ""
}

// String formats the address as `"name" <email>`, leaving out the quoted name
// when there is none and the angle brackets when there is no email.
func (a Address) String() string {
	var parts []string
	if a.Name != "" {
		parts = append(parts, `"`+unquote(a.Name)+`"`)
	}
	if a.Email != "" {
		parts = append(parts, "<"+a.Email+">")
	}
	return strings.Join(parts, " ")
}

// Mailbox validates the address strictly and returns it as an addr.Mailbox.
func (a Address) Mailbox() (*addr.Mailbox, error) {
	return addr.ParseEmailMailbox(a.String())
}

// List is an ordered list of addresses.
type List []Address

// Kind reports whether the list is empty, holds one address, or holds many.
func (l List) Kind() Kind {
	switch len(l) {
	case 0:
		return None
	case 1:
		return One
	default:
		return Many
	}
}

// First returns the first address in the list or the zero Address.
func (l List) First() Address {
	if len(l) == 0 {
		return Address{}
	}
	return l[0]
}

// Emails returns just the email of each address.
func (l List) Emails() []string {
	es := make([]string, 0, len(l))
	for _, a := range l {
		if a.Email != "" {
			es = append(es, a.Email)
		}
	}
	return es
}

// String returns the list as formatted by FormatList.
func (l List) String() string {
	return FormatList(l)
}

var (
	quotedNameOnly = regexp.MustCompile(`^"[^"]*"$`)
	nameAndEmail   = regexp.MustCompile(`^(.*?)\s*<(.*?)>\s*$`)
)

// split breaks raw on commas that are not inside a double-quoted string.
func split(raw string) []string {
	var (
		frags   []string
		cur     strings.Builder
		inQuote bool
		escaped bool
	)

	for _, c := range raw {
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inQuote:
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case c == ',' && !inQuote:
			frags = append(frags, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(c)
	}

	return append(frags, cur.String())
}

// unquote strips a single pair of surrounding double quotes from a name and
// unescapes any quotes inside it.
func unquote(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, `"`)
	name = strings.TrimSuffix(name, `"`)
	return strings.TrimSpace(strings.ReplaceAll(name, `\"`, `"`))
}

// ParseList parses the body of an address header into a List.
//
// The body is split on commas outside of double quotes, and each fragment has
// its encoded words decoded. A fragment that is nothing but a quoted name takes
// the email from the fragment that follows it. Any other fragment is either
// `name <email>` or a bare email. Fragments with neither a name nor an email
// are dropped.
func ParseList(raw string) List {
	frags := split(raw)

	list := make(List, 0, len(frags))
	for i := 0; i < len(frags); i++ {
		frag := strings.TrimSpace(field.DecodeValue(frags[i]))

		var a Address
		if quotedNameOnly.MatchString(frag) && i+1 < len(frags) {
			a.Name = unquote(frag)
			i++
			frag = strings.TrimSpace(field.DecodeValue(frags[i]))
		}

		if m := nameAndEmail.FindStringSubmatch(frag); m != nil {
			if name := unquote(m[1]); name != "" {
				a.Name = name
			}
			a.Email = strings.TrimSpace(m[2])
		} else if quotedNameOnly.MatchString(frag) {
			a.Name = unquote(frag)
		} else {
			a.Email = frag
		}

		if a.IsZero() {
			continue
		}

		list = append(list, a)
	}

	return list
}

// FormatList joins the addresses with ", ", formatting each one as
// Address.String does. Zero addresses are skipped.
func FormatList(l List) string {
	parts := make([]string, 0, len(l))
	for _, a := range l {
		if s := a.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
