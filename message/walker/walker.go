// Package walker provides depth-first traversal of a parsed message that
// reports the depth of each part and its index within its parent.
package walker

import (
	"errors"

	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/walk"
)

// PartWalker is called for each part of a message. The top-level message is
// at depth 0 with index 0. Other parts are numbered from 0 within their
// parent.
//
// Returning walk.SkipParts leaves the sub-parts of the current part
// unvisited. Any other error stops the walk.
type PartWalker func(depth, i int, part message.Part) error

type frame struct {
	depth int
	i     int
	part  message.Part
}

// Walk visits msg and all of its parts, depth first, in the order they appear
// in the message. The first error returned by the PartWalker, other than
// walk.SkipParts, is returned.
func (w PartWalker) Walk(msg message.Generic) error {
	stack := []frame{{part: msg}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		err := w(f.depth, f.i, f.part)
		if errors.Is(err, walk.SkipParts) {
			continue
		} else if err != nil {
			return err
		}

		// pushed in reverse so the first part comes off the stack first
		parts := f.part.GetParts()
		for i := len(parts) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.depth + 1, i, parts[i]})
		}
	}

	return nil
}

// filter returns a PartWalker calling w only for the parts keep accepts. The
// parts of a rejected multipart are still visited.
func (w PartWalker) filter(keep func(message.Part) bool) PartWalker {
	return func(depth, i int, part message.Part) error {
		if !keep(part) {
			return nil
		}
		return w(depth, i, part)
	}
}

// WalkOpaque works like Walk, but only calls the PartWalker for leaf parts.
func (w PartWalker) WalkOpaque(msg message.Generic) error {
	return w.filter(func(p message.Part) bool { return !p.IsMultipart() }).Walk(msg)
}

// WalkMultipart works like Walk, but only calls the PartWalker for multipart
// parts.
func (w PartWalker) WalkMultipart(msg message.Generic) error {
	return w.filter(message.Part.IsMultipart).Walk(msg)
}
