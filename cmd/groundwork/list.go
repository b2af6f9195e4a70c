package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/deployctx"
	"github.com/aaa-platform/groundwork/stacks"
)

func newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stacks and their resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}

			result := groundwork.ListResult{}
			for _, name := range stacks.Names() {
				entry := groundwork.ListStack{Name: name}

				s, err := stacks.Build(ctx, name)
				var missing *deployctx.MissingContextError
				switch {
				case errors.As(err, &missing):
					// Listable even when the stack cannot synthesize yet.
				case err != nil:
					return err
				default:
					for _, id := range s.ResourceIDs() {
						r, _ := s.Resource(id)
						entry.Resources = append(entry.Resources, groundwork.ListResource{
							Name: id,
							Type: r.ResourceType(),
						})
					}
				}
				result.Stacks = append(result.Stacks, entry)

				if asJSON {
					continue
				}
				if missing != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (requires context: %v)\n", name, missing.Keys)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d resources)\n", name, len(entry.Resources))
				for _, r := range entry.Resources {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-40s %s\n", r.Name, r.Type)
				}
			}

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
