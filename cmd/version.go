package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/camtray/internal/version"
	"github.com/spf13/cobra"
)

var versionOutputWriter io.Writer = os.Stdout

// GetVersion returns the current version string.
func GetVersion() string {
	return version.String()
}

// PrintVersion prints the version line.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "camtray v%s\n", GetVersion())
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintVersion()
		},
	}
}
