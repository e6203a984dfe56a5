package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/mahwari/internal/config"
	"github.com/terraincognita07/mahwari/internal/logger"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mahwari",
		Short:         "Private menstrual cycle tracker",
		Long:          "Self-hosted cycle tracker with phase prediction, daily logs and Telegram reminders.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSetPinCmd())
	rootCmd.AddCommand(newResetPinCmd())
	return rootCmd
}

// loadRuntime reads configuration and builds the process logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
