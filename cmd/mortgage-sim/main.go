package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

type rootOptions struct {
	configFile   string
	logLevel     string
	outputFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mortgage-sim",
		Short: "Mortgage amortization simulator",
		Long: `mortgage-sim builds French-system amortization schedules with daily interest
accrual, prepayments, refinancing and an intelligent payoff strategy, and
searches for the monthly extra payment that reaches the crossover month you
want.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.outputFormat, "output-format", "", "output format override: pretty, csv, json")

	cmd.AddCommand(simulateCmd(opts))
	cmd.AddCommand(optimizeCmd(opts))
	cmd.AddCommand(compareCmd(opts))
	cmd.AddCommand(validateCmd(opts))
	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

// load reads the configuration and builds the logger it asks for.
func (o *rootOptions) load() (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(o.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", o.configFile, err)
	}

	logger, err := initializeLogger(conf.Logging, o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	warnings, err := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return conf, logger, nil
}

// format resolves the output format; the CLI flag wins over the config file.
func (o *rootOptions) format(conf *config.Configuration) string {
	if o.outputFormat != "" {
		return o.outputFormat
	}
	if conf.Output.Format != "" {
		return conf.Output.Format
	}
	return constants.OutputFormatPretty
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
