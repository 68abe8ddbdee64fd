package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/pipeline"
)

type editFlags struct {
	ops              []string
	opsFile          string
	replaceSelection string
	output           string
	inPlace          bool
	locations        bool
}

// editCommand creates the edit command for changing a document's sequence.
func (c *CLI) editCommand() *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "edit [document]",
		Short: "Insert, replace or delete bases in a document",
		Long: `Insert, replace or delete bases in a document.

Edits are applied in order; each sees the sequence left by the previous one.
Annotations move, grow, shrink or collapse with the text they cover and the
selection becomes a cursor after the last edit.

Edits are written as:

  insert:POS:TEXT      insert TEXT before position POS
  replace:RANGE:TEXT   replace RANGE (text notation, e.g. 10..20) with TEXT
  delete:RANGE         remove RANGE

Examples:
  seqmap edit pUC19.json -e insert:0:GGATCC -e delete:100..110
  seqmap edit pUC19.json --ops-file edits.yaml --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := flags.collect()
			if err != nil {
				return err
			}
			if len(ops) == 0 && !cmd.Flags().Changed("replace-selection") {
				return errors.New(errors.ErrCodeInvalidEdit, "no edits given (use --edit, --ops-file or --replace-selection)")
			}
			return c.runEdit(cmd.Context(), args[0], ops, flags, cmd.Flags().Changed("replace-selection"))
		},
	}

	cmd.Flags().StringArrayVarP(&flags.ops, "edit", "e", nil, "edit to apply (repeatable): insert:POS:TEXT, replace:RANGE:TEXT, delete:RANGE")
	cmd.Flags().StringVar(&flags.opsFile, "ops-file", "", "JSON or YAML list of edits, applied before --edit")
	cmd.Flags().StringVar(&flags.replaceSelection, "replace-selection", "", "replace the document's selection with this text after other edits")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.edited.<ext>)")
	cmd.Flags().BoolVarP(&flags.inPlace, "in-place", "i", false, "overwrite the input document")
	cmd.Flags().BoolVar(&flags.locations, "locations", false, "write annotation coordinates in interchange notation")

	return cmd
}

// collect gathers the edits from --ops-file and --edit in that order.
func (f *editFlags) collect() ([]edit.Op, error) {
	var ops []edit.Op
	if f.opsFile != "" {
		data, err := os.ReadFile(f.opsFile)
		if err != nil {
			return nil, fmt.Errorf("read ops file %s: %w", f.opsFile, err)
		}
		if err := yaml.Unmarshal(data, &ops); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEdit, err, "decode ops file %s", f.opsFile)
		}
	}
	for _, s := range f.ops {
		op, err := parseEditOp(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseEditOp reads one --edit value.
func parseEditOp(s string) (edit.Op, error) {
	kind, rest, _ := strings.Cut(s, ":")
	switch strings.ToLower(kind) {
	case "insert":
		posText, text, ok := strings.Cut(rest, ":")
		if !ok {
			return edit.Op{}, errors.New(errors.ErrCodeInvalidEdit, "insert needs POS:TEXT, got %q", s)
		}
		pos, err := strconv.Atoi(strings.TrimSpace(posText))
		if err != nil {
			return edit.Op{}, errors.New(errors.ErrCodeInvalidEdit, "invalid insert position in %q", s)
		}
		return edit.Insert(pos, text), nil
	case "replace":
		rangeText, text, ok := strings.Cut(rest, ":")
		if !ok {
			return edit.Op{}, errors.New(errors.ErrCodeInvalidEdit, "replace needs RANGE:TEXT, got %q", s)
		}
		r, err := interval.Parse(rangeText)
		if err != nil {
			return edit.Op{}, err
		}
		return edit.Replace(r, text), nil
	case "delete":
		r, err := interval.Parse(rest)
		if err != nil {
			return edit.Op{}, err
		}
		return edit.Delete(r), nil
	default:
		return edit.Op{}, errors.New(errors.ErrCodeInvalidEdit, "unknown edit %q (use insert, replace or delete)", s)
	}
}

// runEdit applies the edits and writes the edited document.
func (c *CLI) runEdit(ctx context.Context, input string, ops []edit.Op, flags editFlags, replaceSelection bool) error {
	doc, err := pipeline.Load(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	out, err := runner.Edit(ctx, doc, ops)
	if err != nil {
		return err
	}
	if replaceSelection {
		if err := out.ReplaceSelection(flags.replaceSelection); err != nil {
			return fmt.Errorf("replace selection: %w", err)
		}
	}
	prog.done(fmt.Sprintf("Applied %s", plural(len(ops), "edit")))

	outputPath := flags.output
	switch {
	case flags.inPlace:
		outputPath = input
	case outputPath == "":
		ext := filepath.Ext(input)
		outputPath = strings.TrimSuffix(input, ext) + ".edited" + ext
	}

	var wopts []document.WriteOption
	if flags.locations {
		wopts = append(wopts, document.WithLocations())
	}
	if err := document.Export(out, outputPath, wopts...); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Edited %s", doc.Name)
	printFile(outputPath)
	printStats(out.Len(), out.Annotations.Len(), false)
	printDetail("%+d bp, selection %s", out.Len()-doc.Len(), out.Selection)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
