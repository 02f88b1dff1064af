package walk

import (
	"errors"

	"github.com/zostay/go-eml/message"
)

// SkipParts may be returned by a Processor to leave the parts of the current
// multipart unvisited. The walk carries on with the next sibling.
var SkipParts = errors.New("skip the parts of this multipart")

// Processor is called for each part of a message tree along with the parts
// above it, outermost first. The top-level part has no parents. The parents
// slice belongs to the Processor and may be kept.
//
// Returning SkipParts skips the sub-parts of part. Any other error stops the
// walk and is returned by AndProcess.
type Processor func(part message.Part, parents []message.Part) error

// AndProcess calls the Processor for msg and then for each of its parts,
// depth first, in the order they appear in the message.
func AndProcess(processor Processor, msg message.Part) error {
	return process(processor, msg, nil)
}

// AndProcessOpaque works like AndProcess, but only calls the Processor for the
// leaf parts.
func AndProcessOpaque(processor Processor, msg message.Part) error {
	return AndProcess(only(false, processor), msg)
}

// AndProcessMultipart works like AndProcess, but only calls the Processor for
// the branch parts.
func AndProcessMultipart(processor Processor, msg message.Part) error {
	return AndProcess(only(true, processor), msg)
}

func only(multipart bool, processor Processor) Processor {
	return func(part message.Part, parents []message.Part) error {
		if part.IsMultipart() != multipart {
			return nil
		}
		return processor(part, parents)
	}
}

func process(processor Processor, part message.Part, parents []message.Part) error {
	err := processor(part, parents)
	if errors.Is(err, SkipParts) {
		return nil
	} else if err != nil {
		return err
	}

	if !part.IsMultipart() {
		return nil
	}

	// the capacity limit forces a fresh array so kept slices never change
	above := append(parents[:len(parents):len(parents)], part)
	for _, sub := range part.GetParts() {
		if err := process(processor, sub, above); err != nil {
			return err
		}
	}

	return nil
}
