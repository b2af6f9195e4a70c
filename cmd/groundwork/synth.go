package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/internal/synth"
)

func newSynthCmd() *cobra.Command {
	var (
		format string
		outDir string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "synth [stack...]",
		Short: "Synthesize CloudFormation templates",
		Long: `Synthesize CloudFormation templates for the named stacks, or for every
stack in deploy order when no names are given. Templates are written to the
output directory, or to stdout with -o -.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			ctx, err := loadContext()
			if err != nil {
				return err
			}
			built, err := buildStacks(ctx, args)
			if err != nil {
				return err
			}

			if asJSON {
				return synthJSON(cmd, built)
			}

			if outDir != "-" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", outDir, err)
				}
			}

			for _, s := range built {
				res, err := synth.Synthesize(s)
				if err != nil {
					return err
				}
				data, err := render(res.Template, format)
				if err != nil {
					return err
				}

				if outDir == "-" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s", data)
					continue
				}
				path := filepath.Join(outDir, res.Stack+"."+format)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				logger.Info("synthesized stack",
					zap.String("stack", res.Stack),
					zap.Int("resources", len(res.Order)),
					zap.String("template", path))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d resources -> %s\n", res.Stack, len(res.Order), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "templates", "output directory, or - for stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit synthesis results as JSON instead of writing templates")
	return cmd
}

// synthJSON emits one SynthResult per stack, templates embedded.
func synthJSON(cmd *cobra.Command, built []*groundwork.Stack) error {
	results := make([]groundwork.SynthResult, 0, len(built))
	failed := 0
	for _, s := range built {
		res, err := synth.Synthesize(s)
		if err != nil {
			failed++
			results = append(results, groundwork.SynthResult{
				Stack:  s.Name(),
				Errors: []string{err.Error()},
			})
			continue
		}
		results = append(results, groundwork.SynthResult{
			Success:   true,
			Stack:     res.Stack,
			Template:  res.Template,
			Resources: res.Order,
		})
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	if failed > 0 {
		return fmt.Errorf("%d stack(s) failed synthesis", failed)
	}
	return nil
}

func render(t *groundwork.Template, format string) ([]byte, error) {
	if format == "yaml" {
		return synth.ToYAML(t)
	}
	return synth.ToJSON(t)
}
