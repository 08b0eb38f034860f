package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	var printConfig bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			out := cmd.OutOrStdout()
			if printConfig {
				data, err := conf.Marshal()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			_, err = fmt.Fprintf(out, "configuration %s is valid (%d active scenarios)\n",
				opts.configFile, len(conf.ActiveScenarios()))
			return err
		},
	}

	cmd.Flags().BoolVar(&printConfig, "print", false, "print the parsed configuration as YAML")
	return cmd
}
