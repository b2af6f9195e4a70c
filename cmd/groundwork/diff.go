package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/internal/differ"
	"github.com/aaa-platform/groundwork/internal/synth"
	"github.com/aaa-platform/groundwork/stacks"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <stack|old-file> <template-file>",
		Short: "Compare templates",
		Long: `Compare a fresh synthesis of a stack against a previously synthesized
template file, or compare two template files directly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				diff *groundwork.TemplateDiff
				err  error
			)
			if slices.Contains(stacks.Names(), args[0]) {
				diff, err = diffStack(args[0], args[1])
			} else {
				diff, err = differ.CompareFiles(args[0], args[1])
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), differ.Format(diff))
			if differ.HasChanges(diff) {
				sum := differ.Summarize(diff)
				fmt.Fprintf(cmd.OutOrStdout(), "%d added, %d removed, %d modified\n",
					sum.Added, sum.Removed, sum.Modified)
			}
			return nil
		},
	}
}

// diffStack compares a previously synthesized file against a fresh synthesis
// of the named stack.
func diffStack(name, path string) (*groundwork.TemplateDiff, error) {
	ctx, err := loadContext()
	if err != nil {
		return nil, err
	}
	s, err := stacks.Build(ctx, name)
	if err != nil {
		return nil, err
	}
	res, err := synth.Synthesize(s)
	if err != nil {
		return nil, err
	}
	previous, err := differ.LoadTemplate(path)
	if err != nil {
		return nil, err
	}
	return differ.Compare(previous, res.Template)
}
