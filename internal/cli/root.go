package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
	ExitNotFound     = 3
	ExitIOError      = 4
)

var rootCmd = &cobra.Command{
	Use:   "stripbin",
	Short: "Redact an embedded username from compiled binaries",
	Long: "stripbin replaces every occurrence of a username in the files of a build directory\n" +
		"with the placeholder \"user\", so compiled paths do not leak who built them.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print stripbin version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "stripbin version %s\n", version)
	},
}

func printError(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
}
