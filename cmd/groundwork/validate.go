package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [stack...]",
		Short: "Synthesize and lint stacks without writing templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			built, err := buildStacks(ctx, args)
			if err != nil {
				return err
			}

			results := make([]groundwork.ValidateResult, 0, len(built))
			failed := 0
			for _, s := range built {
				result, err := validation.ValidateStack(s)
				if err != nil {
					return err
				}
				results = append(results, result.Contract())
				if !result.Passed() {
					failed++
				}

				if asJSON {
					continue
				}
				for _, w := range result.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: warning: %s\n", result.Stack, w)
				}
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: error: %s\n", result.Stack, e)
				}
				if result.Passed() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d resources)\n", result.Stack, result.Resources)
				}
			}

			if asJSON {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			if failed > 0 {
				return fmt.Errorf("%d stack(s) failed validation", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
