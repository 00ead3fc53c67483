package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/metrika-tools/metrika-app-sheets/commands"
)

var options = commands.Options{
	Config: "",
	Debug:  false,
}

var logger *zap.Logger

var root = &cobra.Command{
	Use:     commands.APP + " --worksheet <worksheet> [--goal-actions-columns <column>...]",
	Short:   commands.LoadCmd.Description(),
	Version: commands.VERSION,
	Args:    cobra.ArbitraryArgs,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if options.Debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		if logger, err = config.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		commands.SetLogger(logger)

		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.LoadCmd.Execute(cmd.Context(), &options, args...)
	},
}

func init() {
	root.Flags().StringVar(&options.Config, "config", options.Config, "YAML configuration file")
	root.Flags().BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")

	commands.LoadCmd.FlagSet(root.Flags())

	if err := root.MarkFlagRequired("worksheet"); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()

	if err := root.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("load failed", zap.Error(err))
			_ = logger.Sync()
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
