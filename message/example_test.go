package message_test

import (
	"fmt"
	"os"

	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/header"
)

func ExampleParseString() {
	m, err := message.ParseString("Subject: Example\n" +
		"Content-Type: multipart/mixed; boundary=x\n" +
		"\n" +
		"--x\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"Hello\n" +
		"--x--\n")
	if err != nil {
		panic(err)
	}

	for _, p := range m.GetParts() {
		mt, _ := p.GetHeader().GetMediaType()
		fmt.Println(mt, p.GetBody())
	}
	// Output: text/plain Hello
}

func ExampleMultipartMixed() {
	h := header.New()
	h.Set(header.ContentType, "text/plain")

	mm := message.MultipartMixed("sep", message.NewOpaque(h, "Hi"))
	mm.Set(header.Subject, "Greetings")

	if _, err := mm.WriteTo(os.Stdout); err != nil {
		panic(err)
	}
}
