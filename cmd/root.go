// Package cmd builds the camtray root command.
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const rootLong = `camtray captures photos from a camera or picks them from your photo
library and keeps a gallery of them, newest first.

Run without a subcommand to open the terminal UI.

CONFIGURATION:
    Settings are read from $XDG_CONFIG_HOME/camtray/config.toml and can be
    overridden with CAMTRAY_* environment variables (for example
    CAMTRAY_STORAGE_BACKEND=sqlite). A .env file in the working directory is
    loaded first.`

// NewRootCmd creates the root command. Subcommands are added by the caller.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "camtray",
		Short:         "Capture photos and keep a local gallery of them",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			Setup()
			logging.Info("command started", "command", cmd.CommandPath())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Info("command finished", "command", cmd.CommandPath())
			_ = logging.ShutdownGlobal()
		},
	}

	root.CompletionOptions.HiddenDefaultCmd = true
	root.AddCommand(NewVersionCmd())
	return root
}

// Setup loads configuration and applies it to console output and logging.
func Setup() {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
}
