package main

import (
	"fmt"

	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/output"
	"github.com/iwvelando/mortgage-engine/pkg/validation"
	"github.com/spf13/cobra"
)

func compareCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare reduce_term against reduce_payment for every active scenario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			outputFormat := opts.format(conf)
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			for i := range conf.Scenarios {
				conf.Scenarios[i].Compare = true
			}

			results, err := scenario.Run(cmd.Context(), logger, conf, nil)
			if err != nil {
				return fmt.Errorf("failed to compare strategies: %w", err)
			}

			if outputFormat == constants.OutputFormatPretty {
				return output.ComparisonFormat(cmd.OutOrStdout(), results)
			}
			return output.Write(cmd.OutOrStdout(), outputFormat, results)
		},
	}
}
