package eml_test

import (
	"fmt"

	"github.com/zostay/go-eml"
	"github.com/zostay/go-eml/message/address"
	"github.com/zostay/go-eml/message/header"
)

func ExampleReadString() {
	e, err := eml.ReadString("From: \"Sterling\" <sterling@example.com>\n" +
		"Subject: Lunch\n" +
		"Content-Type: multipart/alternative; boundary=b\n" +
		"\n" +
		"--b\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"Tacos?\n" +
		"--b\n" +
		"Content-Type: text/html\n" +
		"\n" +
		"<b>Tacos?</b>\n" +
		"--b--\n")
	if err != nil {
		panic(err)
	}

	fmt.Println(e.From.First().Name)
	fmt.Println(e.Subject)
	fmt.Println(e.Text.Text())
	fmt.Println(e.HTML.Text())
	// Output:
	// Sterling
	// Lunch
	// Tacos?
	// <b>Tacos?</b>
}

func ExampleBuild() {
	e := &eml.Email{
		Header:  header.New(),
		Subject: "Lunch",
		To:      address.List{{Name: "Sterling", Email: "sterling@example.com"}},
		Text:    eml.NewTextBody("Tacos?"),
	}

	s, err := eml.Build(e, eml.WithBoundaryGenerator(func() string { return "x" }))
	if err != nil {
		panic(err)
	}

	fmt.Print(s)
}
