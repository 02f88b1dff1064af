// Package scanner splits message input into lines.
//
// Lines may end in either CRLF or a bare LF. The line breaks are not part of
// the lines returned. Input that ends in a line break yields a final empty
// line, so joining the lines with a line break gives back the input (with its
// line breaks normalized).
package scanner

import (
	"bufio"
	"errors"
	"io"
	"regexp"
)

// ErrLargeLine is returned by ReadLines when a line is longer than the limit.
var ErrLargeLine = errors.New("line exceeds the maximum length")

var lineBreak = regexp.MustCompile(`\r?\n`)

// SplitLines splits s into lines.
func SplitLines(s string) []string {
	return lineBreak.Split(s, -1)
}

// trimEOL strips the line break from the end of a line.
func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}

// ReadLines reads r to the end and splits it into lines the same way as
// SplitLines. If maxLen is greater than 0, a line longer than maxLen bytes
// stops the read with ErrLargeLine.
func ReadLines(r io.Reader, maxLen int) ([]string, error) {
	br := bufio.NewReader(r)

	var (
		lines []string
		buf   []byte
	)
	for {
		frag, err := br.ReadSlice('\n')
		buf = append(buf, frag...)

		if maxLen > 0 && len(trimEOL(buf)) > maxLen {
			return nil, ErrLargeLine
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return append(lines, string(buf)), nil
		case err != nil:
			return nil, err
		}

		lines = append(lines, string(trimEOL(buf)))
		buf = buf[:0]
	}
}
