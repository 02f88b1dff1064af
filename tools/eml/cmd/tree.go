package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/walk"
	"github.com/zostay/go-eml/message/walker"
)

var (
	treeCmd = &cobra.Command{
		Use:   "tree message",
		Short: "Lists the parts of a message, indented by depth",
		Args:  cobra.ExactArgs(1),
		RunE:  RunTree,
	}

	treeDepth int
)

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", -1, "deepest level to list, negative for all")
}

func RunTree(cmd *cobra.Command, args []string) error {
	m, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return walker.PartWalker(func(depth, i int, part message.Part) error {
		ct, err := part.GetHeader().GetFirst(header.ContentType)
		if err != nil {
			ct = "(none)"
		}
		ct = strings.Join(strings.Fields(ct), " ")

		size := ""
		if !part.IsMultipart() {
			size = fmt.Sprintf(" [%d bytes]", len(part.GetBody()))
		}

		if _, err := fmt.Fprintf(out, "%s%d. %s%s\n", strings.Repeat("  ", depth), i+1, ct, size); err != nil {
			return err
		}

		if treeDepth >= 0 && depth >= treeDepth {
			return walk.SkipParts
		}
		return nil
	}).Walk(m)
}
