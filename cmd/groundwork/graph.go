package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaa-platform/groundwork/internal/graph"
	"github.com/aaa-platform/groundwork/internal/synth"
)

func newGraphCmd() *cobra.Command {
	var opts graph.Options

	cmd := &cobra.Command{
		Use:   "graph [stack...]",
		Short: "Draw stack dependency graphs (DOT or Mermaid)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			built, err := buildStacks(ctx, args)
			if err != nil {
				return err
			}
			for _, s := range built {
				res, err := synth.Synthesize(s)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), graph.Render(res, opts))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Mermaid, "mermaid", "m", false, "render Mermaid instead of DOT")
	cmd.Flags().BoolVarP(&opts.IncludeParameters, "parameters", "p", false, "include template parameters")
	cmd.Flags().BoolVarP(&opts.ClusterByService, "cluster", "c", false, "cluster resources by service")
	return cmd
}
