package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zostay/go-eml"
	"github.com/zostay/go-eml/internal/logger"
)

var (
	buildCmd = &cobra.Command{
		Use:   "build document",
		Short: "Builds a message from a document written by read",
		Long: `Builds a message from a document written by read. The document may be
JSON or YAML. The message is written to stdout with CRLF line breaks.`,
		Args: cobra.ExactArgs(1),
		RunE: RunBuild,
	}

	encode   bool
	boundary string
)

func init() {
	buildCmd.Flags().BoolVar(&encode, "encode", false, "encode bodies according to their stored headers")
	buildCmd.Flags().StringVar(&boundary, "boundary", "", "boundary to use when the message needs a new one")
}

func buildOptions(cmd *cobra.Command) []eml.BuildOption {
	opts := []eml.BuildOption{eml.WithBuildLogger(logger.FromContext(cmd.Context()))}
	if encode {
		opts = append(opts, eml.WithEncode())
	}
	if boundary != "" {
		opts = append(opts, eml.WithBoundaryGenerator(func() string { return boundary }))
	}
	return opts
}

func RunBuild(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	// YAML is a superset of JSON, so this reads both
	var doc emailDoc
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return fmt.Errorf("unable to read document: %w", err)
	}

	e, err := doc.email()
	if err != nil {
		return err
	}

	s, err := eml.Build(e, buildOptions(cmd)...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), s)
	return err
}
