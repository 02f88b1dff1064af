package field

import (
	"regexp"
	"strings"
)

var (
	fieldLine        = regexp.MustCompile(`^([\w\-]+):\s*([^\r\n]*)`)
	continuationLine = regexp.MustCompile(`^[ \t]+(.*)`)
)

// ParseLine reads a single "Name: body" header line. The name is made of
// letters, digits, underscores and hyphens. Leading whitespace is removed from
// the body. It returns false if the line is not a field line.
func ParseLine(line string) (name, body string, ok bool) {
	m := fieldLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ParseContinuation reads a folded continuation line, which must begin with
// whitespace. Surrounding whitespace is removed. It returns false if the line
// is not a continuation or holds nothing but whitespace.
func ParseContinuation(line string) (string, bool) {
	m := continuationLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	body := strings.TrimSpace(m[1])
	if body == "" {
		return "", false
	}
	return body, true
}

// IsContinuation returns true if the line begins with whitespace.
func IsContinuation(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}
