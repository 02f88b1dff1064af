package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-eml"
	"github.com/zostay/go-eml/internal/logger"
	"github.com/zostay/go-eml/message"
)

var (
	roundtripCmd = &cobra.Command{
		Use:   "roundtrip message...",
		Short: "Shows the diff of each message after a round trip",
		Long: `Parses each message and writes it out again, showing how the output differs
from the input. Line breaks are compared as CRLF. With --build, each message is
read, built, and read again and the two flattened documents are compared.`,
		Args: cobra.MinimumNArgs(1),
		RunE: RunRoundtrip,
	}

	viaBuild bool
)

func init() {
	roundtripCmd.Flags().BoolVar(&viaBuild, "build", false, "compare read documents before and after a build")
}

var anyLineBreak = regexp.MustCompile(`\r?\n`)

// writeRoundtrip returns the input as it was parsed and the parsed message
// written back out.
func writeRoundtrip(cmd *cobra.Command, in string) (string, string, error) {
	m, err := message.ParseString(in, parseOptions(cmd)...)
	if err != nil {
		return "", "", err
	}

	out := &strings.Builder{}
	if _, err := m.WriteTo(out); err != nil {
		return "", "", err
	}

	return anyLineBreak.ReplaceAllString(in, "\r\n"), out.String(), nil
}

// docString renders the flattened fields of e. Build rewrites the headers, so
// those are left out.
func docString(e *eml.Email) (string, error) {
	doc := newEmailDoc(e)
	doc.Header = nil
	for _, b := range []*bodyDoc{doc.Text, doc.HTML} {
		if b != nil {
			b.Header = nil
		}
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	err := enc.Encode(doc)
	return buf.String(), err
}

// buildRoundtrip returns the read document of the input and the read
// document after the input was built again.
func buildRoundtrip(cmd *cobra.Command, in string) (string, string, error) {
	log := logger.FromContext(cmd.Context())
	readOpts := []eml.ReadOption{
		eml.WithReadLogger(log),
		eml.WithParseOptions(parseOptions(cmd)...),
	}

	before, err := eml.ReadString(in, readOpts...)
	if err != nil {
		return "", "", err
	}

	built, err := eml.Build(before, eml.WithBuildLogger(log))
	if err != nil {
		return "", "", err
	}

	after, err := eml.ReadString(built, readOpts...)
	if err != nil {
		return "", "", err
	}

	a, err := docString(before)
	if err != nil {
		return "", "", err
	}

	b, err := docString(after)
	return a, b, err
}

func RunRoundtrip(cmd *cobra.Command, args []string) error {
	dmp := diffmatchpatch.New()
	out := cmd.OutOrStdout()
	log := logger.FromContext(cmd.Context())

	trip := writeRoundtrip
	if viaBuild {
		trip = buildRoundtrip
	}

	failed := 0
	for _, path := range args {
		in, err := readInput(cmd, path)
		if err != nil {
			return err
		}

		a, b, err := trip(cmd, string(in))
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("round trip failed")
			failed++
			continue
		}

		if a == b {
			fmt.Fprintf(out, "ok   %s\n", path)
			continue
		}

		failed++
		diffs := dmp.DiffMain(a, b, false)
		fmt.Fprintf(out, "diff %s\n%s\n", path, dmp.PatchToText(dmp.PatchMake(a, diffs)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d messages did not round trip", failed, len(args))
	}

	return nil
}
