// Command groundwork synthesizes the AAA platform's CloudFormation templates
// from the resource declarations in this repository.
//
// Usage:
//
//	groundwork synth                  Synthesize all stacks
//	groundwork validate               Synthesize and lint
//	groundwork list                   Show stacks and resources
//	groundwork graph aaa-data-tier    Draw a dependency graph
//	groundwork diff <stack> <file>    Compare against a synthesized file
//	groundwork watch                  Re-synthesize on context changes
//	groundwork publish                Upload templates to S3
//	groundwork version                Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaa-platform/groundwork"
	"github.com/aaa-platform/groundwork/deployctx"
	"github.com/aaa-platform/groundwork/stacks"
)

var (
	contextFile      string
	contextOverrides []string
	verbose          bool

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "groundwork",
		Short: "Synthesize the AAA platform's CloudFormation templates",
		Long: `groundwork declares the AAA platform's AWS infrastructure as Go values
and synthesizes CloudFormation templates from them.

Deploy-time values (account, region, access-control role ARNs) come from
groundwork.json and can be overridden per invocation:

    groundwork synth --context database_access_role_arn=arn:aws:iam::...`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&contextFile, "context-file", deployctx.DefaultFile, "deploy-time context file")
	rootCmd.PersistentFlags().StringArrayVar(&contextOverrides, "context", nil, "context override (key=value, repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(
		newSynthCmd(),
		newValidateCmd(),
		newListCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newPublishCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func loadContext() (*deployctx.Context, error) {
	return deployctx.Load(contextFile, contextOverrides)
}

// buildStacks declares the named stacks, or all stacks in deploy order when
// no names are given.
func buildStacks(ctx *deployctx.Context, names []string) ([]*groundwork.Stack, error) {
	if len(names) == 0 {
		return stacks.BuildAll(ctx)
	}
	out := make([]*groundwork.Stack, 0, len(names))
	for _, name := range names {
		s, err := stacks.Build(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
