package main

import (
	"fmt"
	"os"

	"github.com/iwvelando/mortgage-engine/internal/optimizer"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/output"
	"github.com/iwvelando/mortgage-engine/pkg/validation"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func simulateCmd(opts *rootOptions) *cobra.Command {
	var optimize bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate every active scenario and print the schedules",
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

			ctx := cmd.Context()

			var optimization *optimizer.Result
			if optimize {
				runner, err := optimizer.NewRunner(logger, conf)
				if err != nil {
					return err
				}
				if optimization, err = runner.Run(ctx); err != nil {
					return fmt.Errorf("optimizer execution failed: %w", err)
				}
			}

			var progress scenario.ProgressFunc
			active := len(conf.ActiveScenarios())
			if outputFormat == constants.OutputFormatPretty && active > 1 {
				bar := progressbar.NewOptions(active,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("Simulating scenarios"),
					progressbar.OptionClearOnFinish(),
				)
				progress = func(_, _ int) {
					if err := bar.Add(1); err != nil {
						logger.Warn("failed to update progress bar",
							zap.String("op", "main.simulate"),
							zap.Error(err),
						)
					}
				}
			}

			results, err := scenario.Run(ctx, logger, conf, progress)
			if err != nil {
				return fmt.Errorf("failed to simulate scenarios: %w", err)
			}
			if optimization != nil {
				optimization.Apply(results)
			}

			return output.Write(cmd.OutOrStdout(), outputFormat, results)
		},
	}

	cmd.Flags().BoolVar(&optimize, "optimize", false, "run optimizer directives before simulating")
	return cmd
}
