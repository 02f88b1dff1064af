package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-eml/message"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse message",
		Short: "Prints the part tree of a message as a document",
		Args:  cobra.ExactArgs(1),
		RunE:  RunParse,
	}

	headersOnly bool
	decode      bool
)

func init() {
	parseCmd.Flags().BoolVar(&headersOnly, "headers-only", false, "stop after the top-level header")
	parseCmd.Flags().BoolVar(&decode, "decode", false, "remove the Content-Transfer-Encoding from each body")
}

func RunParse(cmd *cobra.Command, args []string) error {
	var extra []message.ParseOption
	if headersOnly {
		extra = append(extra, message.WithHeadersOnly())
	}

	m, err := parseFile(cmd, args[0], extra...)
	if err != nil {
		return err
	}

	doc, err := newPartDoc(m, decode)
	if err != nil {
		return err
	}

	return writeDocument(cmd.OutOrStdout(), doc)
}
