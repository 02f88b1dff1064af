package message

import (
	"errors"
	"fmt"

	"github.com/zostay/go-eml/internal/scanner"
)

// Errors returned by Parse, Read, and Build.
var (
	// ErrArgument is returned when a required input is missing, such as a nil
	// io.Reader passed to Parse or an Email without a Header passed to Build.
	ErrArgument = errors.New("invalid argument")

	// ErrStructure is matched by every *StructuralError.
	ErrStructure = errors.New("malformed message structure")

	// ErrLargeLine is returned by Parse when a line of input is longer than
	// the limit set by WithMaxLineLength.
	ErrLargeLine = scanner.ErrLargeLine
)

// StructuralError is returned when the shape of a message is too broken to
// parse. Use errors.Is(err, ErrStructure) to test for it.
type StructuralError struct {
	// Depth is the multipart nesting depth the problem was found at. The top
	// level message is at depth 0.
	Depth int

	// Line is the line number (starting from 1) where the part having the
	// problem begins.
	Line int

	// Reason describes the problem.
	Reason string
}

// Error returns the message describing the structural problem.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s at depth %d (line %d): %s", ErrStructure, e.Depth, e.Line, e.Reason)
}

// Is makes errors.Is match any StructuralError against ErrStructure.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructure
}
