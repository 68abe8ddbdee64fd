package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/pipeline"
)

// notationCommand creates the notation command for converting range text.
func (c *CLI) notationCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "notation [span]",
		Short: "Convert a span between text and interchange notation",
		Long: `Convert a span between text and interchange notation.

Text notation is 0-based and half-open: 10..20, (10..20) on the minus strand,
[10..20] without orientation, and "+" between the ranges of a split span.
Interchange notation is 1-based and closed: 11..20, complement(11..20),
join(1..10,21..30).

Examples:
  seqmap notation "(10..20) + 30..40"
  seqmap notation --from interchange --to text "complement(11..20)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := pipeline.ConvertNotation(strings.Join(args, " "), from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", pipeline.NotationText, "input notation: text, interchange")
	cmd.Flags().StringVar(&to, "to", pipeline.NotationInterchange, "output notation: text, interchange")
	_ = cmd.RegisterFlagCompletionFunc("from", notationCompletion)
	_ = cmd.RegisterFlagCompletionFunc("to", notationCompletion)

	return cmd
}

func notationCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{pipeline.NotationText, pipeline.NotationInterchange}, cobra.ShellCompDirectiveNoFileComp
}
