package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaa-platform/groundwork/internal/publish"
	"github.com/aaa-platform/groundwork/internal/synth"
)

func newPublishCmd() *cobra.Command {
	var (
		format   string
		bucket   string
		prefix   string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "publish [stack...]",
		Short: "Synthesize and upload templates to S3",
		Long: `Synthesize the named stacks (or all stacks) and upload the templates to
an S3 bucket for the provisioning engine to consume. Credentials come from
AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext()
			if err != nil {
				return err
			}
			built, err := buildStacks(ctx, args)
			if err != nil {
				return err
			}

			publisher, err := publish.New(publish.Options{
				Bucket:          bucket,
				Prefix:          prefix,
				Region:          ctx.Region,
				Endpoint:        endpoint,
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			}, logger)
			if err != nil {
				return err
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
				key, err := publisher.Publish(cmd.Context(), res.Stack, data, format)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> s3://%s/%s\n", res.Stack, bucket, key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "template format (json or yaml)")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "destination bucket (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "templates", "key prefix inside the bucket")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3 endpoint override")
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}
