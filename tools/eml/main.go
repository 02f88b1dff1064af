package main

import "github.com/zostay/go-eml/tools/eml/cmd"

func main() {
	cmd.Execute()
}
