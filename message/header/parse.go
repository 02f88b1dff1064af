package header

import (
	"regexp"

	"github.com/zostay/go-eml/message/header/field"
)

// Parser builds a Header one line at a time. Lines that start a field add a
// body to the named field. Lines that begin with whitespace continue the most
// recently added body. Anything else is ignored.
type Parser struct {
	h    *Header
	last *field.Field
}

// NewParser returns a Parser with an empty header.
func NewParser() *Parser {
	return &Parser{h: New()}
}

// Line feeds one line (without its line break) to the parser. It returns false
// if the line was ignored.
func (p *Parser) Line(line string) bool {
	if field.IsContinuation(line) {
		cont, ok := field.ParseContinuation(line)
		if !ok || p.last == nil {
			return false
		}
		p.last.AppendContinuation(cont)
		return true
	}

	name, body, ok := field.ParseLine(line)
	if !ok {
		return false
	}

	_ = p.h.Add(name, body)
	p.last = p.h.GetField(name)
	return true
}

// Header returns the header built so far.
func (p *Parser) Header() *Header {
	return p.h
}

var splitLines = regexp.MustCompile(`\r?\n`)

// Parse reads a header block from the given text. Parsing stops at the first
// empty line. Lines that are neither fields nor continuations are skipped.
func Parse(s string) *Header {
	p := NewParser()
	for _, line := range splitLines.Split(s, -1) {
		if line == "" {
			break
		}
		p.Line(line)
	}
	return p.Header()
}
