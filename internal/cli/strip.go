package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/dshills/stripbin/internal/config"
	"github.com/dshills/stripbin/internal/output"
	"github.com/dshills/stripbin/internal/redact"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Shared configuration flags
var (
	flagDir          string
	flagSecretSource string
	flagFilter       string
	flagExt          string
	flagSecretEnv    string
	flagVariant      string
	flagFormat       string
	flagDryRun       bool
	flagVerbose      bool
)

// strip-only flags
var (
	flagOut     string
	flagNoColor bool
)

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDir, "dir", "", "Directory containing the binaries (default \"bin\")")
	cmd.Flags().StringVar(&flagSecretSource, "secret-source", "", "Where the username comes from (arg, env)")
	cmd.Flags().StringVar(&flagFilter, "filter", "", "File selection mode (exact_stem, extension)")
	cmd.Flags().StringVar(&flagExt, "ext", "", "Suffix matched in extension mode (default \".exe\")")
	cmd.Flags().StringVar(&flagSecretEnv, "secret-env", "", "Environment variable holding the username (default \"username\")")
	cmd.Flags().StringVar(&flagVariant, "variant", "", "Legacy preset: A (stem+arg), B (extension+env), C (stem+env)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report what would change without writing files")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every file considered")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagVariant != "" {
		m["variant"] = flagVariant
	}
	if flagDir != "" {
		m["dir"] = flagDir
	}
	if flagSecretSource != "" {
		m["secretSource"] = flagSecretSource
	}
	if flagFilter != "" {
		m["filterMode"] = flagFilter
	}
	if flagExt != "" {
		m["extension"] = flagExt
	}
	if flagSecretEnv != "" {
		m["secretEnv"] = flagSecretEnv
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagDryRun {
		m["dryRun"] = strconv.FormatBool(flagDryRun)
	}
	if flagVerbose {
		m["verbose"] = strconv.FormatBool(flagVerbose)
	}
	return m
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    flagNoColor,
	})
	switch {
	case cfg.Verbose:
		log.SetLevel(logrus.DebugLevel)
	case cfg.Format != "text":
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// exitCodeFor maps a redaction failure onto a process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case redact.IsConfigError(err):
		return ExitUsageError
	case redact.IsNotFound(err):
		return ExitNotFound
	case redact.IsIOError(err):
		return ExitIOError
	default:
		return ExitRuntimeError
	}
}

// runStrip loads configuration, redacts matching files on fsys and writes
// the report. It returns the process exit code.
func runStrip(ctx context.Context, fsys afero.Fs, args []string) int {
	if flagNoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(buildOverrides())
	if err != nil {
		printError(err)
		return exitCodeFor(err)
	}

	opts, err := config.Resolve(cfg, args, os.Getenv)
	if err != nil {
		printError(err)
		return exitCodeFor(err)
	}

	log := newLogger(cfg)
	log.WithFields(logrus.Fields{
		"dir":    opts.Dir,
		"filter": opts.Filter.String(),
		"dryRun": opts.DryRun,
	}).Debug("starting redaction")

	report, err := redact.New(fsys, log).Run(ctx, opts)
	if err != nil {
		printError(err)
		return exitCodeFor(err)
	}

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		printError(err)
		return ExitIOError
	}
	return ExitSuccess
}

var stripCmd = &cobra.Command{
	Use:   "strip [stem] [username]",
	Short: "Replace a username with \"user\" in matching binaries",
	Long: `Replace every occurrence of a username with the placeholder "user" in the
files of the target directory that match the filter.

In exact_stem mode (default) the first argument is the file stem to match:
"backup" selects backup.exe and backup.linux.amd64. With --secret-source=arg
(default) the next argument is the username; with --secret-source=env it is
read from the environment variable named by --secret-env.

Matched files are rewritten through a temp file and rename.`,
	Example: `  stripbin strip backup alice
  username=alice stripbin strip --variant B
  username=alice stripbin strip --secret-source env backup --dry-run`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode = runStrip(cmd.Context(), afero.NewOsFs(), args)
		return nil
	},
}

func init() {
	addConfigFlags(stripCmd)
	stripCmd.Flags().StringVar(&flagOut, "out", "", "Report output file path (default: stdout)")
	stripCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}
