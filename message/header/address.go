package header

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList parses an address field body. The strict RFC 5322 parser
// from go-addr is tried first. When it refuses the input, a lenient parser
// takes over that will make some kind of mailbox out of almost anything, so
// the result may be odd but is rarely empty.
func ParseAddressList(body string) addr.AddressList {
	if al, err := ParseAddressListStrict(body); err == nil {
		return al
	}

	return parseLenientAddressList(lineBreak.ReplaceAllString(body, " "))
}

// ParseAddressListStrict parses an address field body as an RFC 5322
// address-list and fails on anything else. Folding is allowed.
func ParseAddressListStrict(body string) (addr.AddressList, error) {
	return addr.ParseEmailAddressList(lineBreak.ReplaceAllString(body, " "))
}

// GetAddressList parses the first named field with ParseAddressList. A missing
// field is ErrNoSuchField.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.GetFirst(name)
	if err != nil {
		return nil, err
	}
	return ParseAddressList(body), nil
}

// parseLenientAddressList splits on commas that are not quoted, commented or
// bracketed. Each piece becomes a mailbox: the address is whatever sits in
// angle brackets, or else the last word, and the words before it are the
// display name. Groups are not recognized.
func parseLenientAddressList(body string) addr.AddressList {
	var as addr.AddressList
	for _, piece := range splitAddresses(body) {
		if mb, ok := lenientMailbox(piece); ok {
			as = append(as, mb)
		}
	}
	return as
}

func splitAddresses(body string) []string {
	var (
		pieces  []string
		start   int
		quoted  bool
		depth   int
		bracket bool
	)

	for i, c := range body {
		switch {
		case c == '"' && depth == 0:
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth > 0:
		case c == '<':
			bracket = true
		case c == '>':
			bracket = false
		case c == ',' && !bracket:
			pieces = append(pieces, body[start:i])
			start = i + 1
		}
	}

	return append(pieces, body[start:])
}

// stripComments separates the parenthesized comments out of s.
func stripComments(s string) (clean, comment string) {
	var cb, mb strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			if depth > 0 {
				mb.WriteRune(c)
			}
			depth++
		case c == ')' && depth > 0:
			depth--
			if depth > 0 {
				mb.WriteRune(c)
			}
		case depth > 0:
			mb.WriteRune(c)
		default:
			cb.WriteRune(c)
		}
	}
	return cb.String(), strings.TrimSpace(mb.String())
}

func lenientMailbox(piece string) (addr.Address, bool) {
	clean, comment := stripComments(piece)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return nil, false
	}

	var name, email string
	if lt := strings.Index(clean, "<"); lt >= 0 {
		name = clean[:lt]
		email = strings.TrimSuffix(strings.TrimSpace(clean[lt+1:]), ">")
	} else {
		words := strings.Fields(clean)
		email = words[len(words)-1]
		name = strings.Join(words[:len(words)-1], " ")
	}

	name = strings.Trim(strings.TrimSpace(name), `"`)
	email = strings.TrimSpace(email)

	local, domain := email, ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		local, domain = email[:at], email[at+1:]
	}
	addrSpec := addr.NewAddrSpecParsed(local, domain, email)

	mb, err := addr.NewMailboxParsed(name, addrSpec, comment, piece)
	if err != nil {
		mb, _ = addr.NewMailboxParsed(name, addrSpec, "", piece)
	}
	return mb, true
}
