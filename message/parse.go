package message

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zostay/go-eml/internal/scanner"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/header/param"
)

// Constants related to Parse() options.
const (
	// DefaultMaxMultipartDepth is the default depth the parser will recurse
	// into a message.
	DefaultMaxMultipartDepth = 64

	// DefaultMaxLineLength is the default limit on the length of a line read
	// by Parse. Zero means no limit.
	DefaultMaxLineLength = 0
)

type parser struct {
	headersOnly bool
	maxDepth    int
	maxLineLen  int
	logger      zerolog.Logger
	hook        func(Generic, error)
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	maxDepth:   DefaultMaxMultipartDepth,
	maxLineLen: DefaultMaxLineLength,
	logger:     zerolog.Nop(),
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithHeadersOnly is a ParseOption that stops parsing at the end of the
// top-level header. The message returned is always an *Opaque without a body.
func WithHeadersOnly() ParseOption {
	return func(pr *parser) { pr.headersOnly = true }
}

// WithMaxDepth is a ParseOption that controls how deep the parser will go in
// recursively parsing a multipart message. A message nested deeper than this
// fails the parse with a *StructuralError. This is set to
// DefaultMaxMultipartDepth by default. A negative value removes the limit.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) { pr.maxDepth = maxDepth }
}

// WithUnlimitedRecursion is a ParseOption that will allow the parser to parse
// sub-parts of any depth.
func WithUnlimitedRecursion() ParseOption {
	return WithMaxDepth(-1)
}

// WithMaxLineLength is a ParseOption that limits the length of the lines Parse
// will read from its io.Reader. A longer line fails the parse with
// ErrLargeLine. A value less than or equal to 0 means no limit.
func WithMaxLineLength(n int) ParseOption {
	return func(pr *parser) { pr.maxLineLen = n }
}

// WithLogger is a ParseOption that sets the logger the parser reports
// anomalies to, such as a multipart message missing its boundary. Nothing is
// logged by default.
func WithLogger(logger zerolog.Logger) ParseOption {
	return func(pr *parser) { pr.logger = logger }
}

// WithParseHook is a ParseOption that sets a function called with the result
// of the parse just before Parse returns it.
func WithParseHook(hook func(Generic, error)) ParseOption {
	return func(pr *parser) { pr.hook = hook }
}

// The states of the parser at each level of the message.
type state int

const (
	stateHeaders state = iota
	stateBodyPlain
	stateBodyMultipart
	stateBoundaryPart
)

// rawPart holds the lines found between two delimiters.
type rawPart struct {
	start int
	lines []string
}

// Parse will consume input from the given reader and return a Generic message
// containing the parsed content.
//
// The input is split into lines on CRLF or LF. The header is read up to the
// first empty line. Lines that start with whitespace continue the field before
// them, joined with a CRLF. If the empty line after the top-level header is
// followed by a line beginning with ">", the preamble some clients write there
// is skipped and the next empty line ends the header instead. Parts never skip
// anything, so a body that opens with a quoted reply is kept whole.
//
// If the Content-Type is multipart/* and names a boundary, the body is split
// into parts at each line that is "--" and the boundary, give or take trailing
// spaces and tabs. A line that merely starts with the delimiter, such as that
// of a nested boundary extending this one, is content. Delimiters do not have
// to be preceded by an empty line. The terminal delimiter, ending in
// "--", closes the body when it is followed by an empty line or is the last
// line. Anything before the first delimiter or after the terminal delimiter
// is dropped. A body that ends without a terminal delimiter keeps the parts
// found so far. Each part is parsed the same way, recursively, so each part
// becomes either an *Opaque or a *Multipart.
//
// Anything else becomes an *Opaque holding the rest of the lines, joined with
// CRLF, as its body. This includes a multipart/* message with no boundary
// parameter or with a boundary that is never found.
//
// Parse fails with ErrArgument if r is nil, with a *StructuralError if the
// message nests deeper than WithMaxDepth allows, and with ErrLargeLine if a
// line is longer than WithMaxLineLength allows.
func Parse(r io.Reader, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	if r == nil {
		return pr.done(nil, fmt.Errorf("%w: nil reader", ErrArgument))
	}

	lines, err := scanner.ReadLines(r, pr.maxLineLen)
	if err != nil {
		return pr.done(nil, err)
	}

	return pr.done(pr.parseLines(lines, 0, 0, ""))
}

// ParseString works like Parse, but parses the given string.
func ParseString(s string, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	return pr.done(pr.parseLines(scanner.SplitLines(s), 0, 0, ""))
}

// done calls the parse hook and returns the result.
func (pr *parser) done(msg Generic, err error) (Generic, error) {
	if err != nil {
		msg = nil
	}

	if pr.hook != nil {
		pr.hook(msg, err)
	}

	return msg, err
}

// multipartBoundary returns the boundary to split the body on or an empty
// string if the body is not multipart.
func (pr *parser) multipartBoundary(h *header.Header, depth int) string {
	ct, err := h.GetFirst(header.ContentType)
	if err != nil {
		return ""
	}

	pv := param.ParseLenient(ct)
	if !pv.IsMultipart() {
		return ""
	}

	if pv.Boundary() == "" {
		pr.logger.Warn().
			Int("depth", depth).
			Str("content-type", pv.MediaType()).
			Msg("multipart message is missing its boundary; treating the body as text")
		return ""
	}

	return pv.Boundary()
}

// parseLines parses one level of a message from its lines. The offset is the
// index of the first line within the whole input and token is the delimiter
// that opened the part, if any.
func (pr *parser) parseLines(lines []string, depth, offset int, token string) (Generic, error) {
	if pr.maxDepth >= 0 && depth > pr.maxDepth {
		return nil, &StructuralError{
			Depth:  depth,
			Line:   offset + 1,
			Reason: fmt.Sprintf("multipart nesting exceeds the maximum depth of %d", pr.maxDepth),
		}
	}

	var (
		hp       = header.NewParser()
		st       = stateHeaders
		boundary string
		i        int
	)

	// read the header
	for ; i < len(lines); i++ {
		line := lines[i]
		if line != "" {
			hp.Line(line)
			continue
		}

		// skip the preamble some clients put after the top-level header
		// break; inside a part, a leading ">" is a quoted reply
		if depth == 0 && i+1 < len(lines) && strings.HasPrefix(lines[i+1], ">") {
			for i+1 < len(lines) && lines[i+1] != "" {
				i++
			}
			continue
		}

		i++
		if pr.headersOnly {
			break
		}

		st = stateBodyPlain
		if boundary = pr.multipartBoundary(hp.Header(), depth); boundary != "" {
			st = stateBodyMultipart
		}
		break
	}

	h := hp.Header()
	switch st {
	case stateHeaders:
		return &Opaque{Header: *h, token: token}, nil
	case stateBodyPlain:
		return pr.opaque(h, lines[i:], token), nil
	}

	var (
		delim  = "--" + boundary
		term   = delim + "--"
		start  = i
		raws   []*rawPart
		cur    *rawPart
		closed bool
	)

body:
	for ; i < len(lines); i++ {
		line := lines[i]

		// delimiters may carry trailing transport padding
		marker := strings.TrimRight(line, " \t")
		switch {
		case marker == delim:
			st = stateBoundaryPart
			cur = &rawPart{start: offset + i + 1}
			raws = append(raws, cur)

		case marker == term && (i+1 == len(lines) || lines[i+1] == ""):
			closed = true
			break body

		case st == stateBoundaryPart:
			cur.lines = append(cur.lines, line)
		}
	}

	if len(raws) == 0 {
		pr.logger.Debug().
			Int("depth", depth).
			Str("boundary", boundary).
			Msg("no delimiter found for the boundary; treating the body as text")
		return pr.opaque(h, lines[start:], token), nil
	}

	if !closed {
		pr.logger.Warn().
			Int("depth", depth).
			Str("boundary", boundary).
			Msg("multipart body ends without its terminal delimiter")
	}

	parts := make([]Part, 0, len(raws))
	for _, raw := range raws {
		part, err := pr.parseLines(raw.lines, depth+1, raw.start, boundary)
		if err != nil {
			return nil, err
		}

		parts = append(parts, part)
	}

	return newMultipart(h, token, boundary, parts), nil
}

// opaque returns an Opaque with the given lines as its body.
func (pr *parser) opaque(h *header.Header, lines []string, token string) *Opaque {
	return &Opaque{
		Header:  *h,
		body:    strings.Join(lines, header.CRLF),
		hasBody: true,
		token:   token,
	}
}
