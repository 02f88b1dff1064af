// Package message parses email messages into a tree of parts. The parser is
// forgiving: it survives missing blank lines, unterminated multipart bodies,
// boundaries that are declared but never used, and the preamble some clients
// write after the header.
//
// Every message is either an Opaque, a header with a literal body, or a
// Multipart, a header with a list of sub-parts, each of which is again an
// Opaque or a Multipart. Both implement Part, so a type switch on the two is
// all it takes to handle any message:
//
//	msg, err := message.Parse(in)
//	if err != nil {
//	  panic(err)
//	}
//
//	switch m := msg.(type) {
//	case *message.Opaque:
//	  fmt.Println(m.GetBody())
//	case *message.Multipart:
//	  fmt.Println(len(m.GetParts()), "parts")
//	}
//
// Bodies are kept exactly as found, transfer encoding included. The parent
// package reads a parsed tree into a flattened, decoded message and builds new
// messages from one.
package message
