package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/mahwari/internal/cli"
	"github.com/terraincognita07/mahwari/internal/logger"
)

func newSetPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-pin",
		Short: "Set a new unlock PIN from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			pin, err := cli.PromptNewPIN(os.Stdin, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.RunSetPinCommand(cfg.DBPath, pin, cmd.OutOrStdout(), log)
		},
	}
}

func newResetPinCmd() *cobra.Command {
	var clearPin bool
	cmd := &cobra.Command{
		Use:   "reset-pin",
		Short: "Replace the unlock PIN with a random one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			if clearPin {
				return cli.RunClearPinCommand(cfg.DBPath, cmd.OutOrStdout(), log)
			}
			return cli.RunResetPinCommand(cfg.DBPath, cmd.OutOrStdout(), log)
		},
	}
	cmd.Flags().BoolVar(&clearPin, "clear", false, "remove the PIN instead of generating a new one")
	return cmd
}
