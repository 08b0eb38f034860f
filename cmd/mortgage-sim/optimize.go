package main

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/internal/optimizer"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/validation"
	"github.com/spf13/cobra"
)

func optimizeCmd(opts *rootOptions) *cobra.Command {
	var targetMonth int

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the monthly extra payment that reaches a crossover target",
		Long: `Searches, for each active scenario with an optimizer target, the smallest
recurring monthly extra payment whose first crossover month is at or before
the target. --target-month applies a target to every active scenario that
does not declare one.`,
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

			if targetMonth > 0 {
				for i := range conf.Scenarios {
					if conf.Scenarios[i].Optimizer == nil {
						conf.Scenarios[i].Optimizer = &config.OptimizerConfig{TargetMonth: targetMonth}
					}
				}
			}

			runner, err := optimizer.NewRunner(logger, conf)
			if err != nil {
				return err
			}
			result, err := runner.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("optimizer execution failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if outputFormat == constants.OutputFormatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Summaries)
			}

			for _, s := range conf.ActiveScenarios() {
				summary, ok := result.Summaries[s.Name]
				if !ok {
					continue
				}
				status := "converged"
				if !summary.Converged {
					status = "not reached"
				}
				if _, err := fmt.Fprintf(out, "%s: %s per month for crossover by month %d (%s, %d iterations)\n",
					s.Name, summary.ValueDisplay, summary.TargetMonth, status, summary.Iterations); err != nil {
					return err
				}
				for _, note := range summary.Notes {
					if _, err := fmt.Fprintf(out, "  note: %s\n", note); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&targetMonth, "target-month", 0, "crossover target for scenarios without an optimizer section")
	return cmd
}
