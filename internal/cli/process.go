package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process <bill.pdf>",
		Short: "Parse a bill PDF and create the split expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pipeline, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(cmd.Context(), args[0], dryRun)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderResult(result, cfg.Share.UserMappings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be submitted without creating anything")
	return cmd
}
