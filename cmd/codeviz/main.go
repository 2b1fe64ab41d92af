package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/codeviz/internal/config"
	"github.com/rohankatakam/codeviz/internal/errors"
	"github.com/rohankatakam/codeviz/internal/logging"
	"github.com/rohankatakam/codeviz/internal/output"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	quiet   bool
	logger  *logging.Logger
	cfg     *config.Config

	stdout io.Writer = os.Stdout
)

func main() {
	defer func() {
		if logger != nil {
			logger.Close()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "codeviz",
	Short: "codeviz - incremental codebase map renderer",
	Long: `codeviz draws a space-filling map of a codebase with temporal coupling
edges and a commit timescale. Each invocation is one or more render passes
over a saved session, redrawing only what the new view state requires.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
			cfg = config.Default()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		output.ConfigureColor(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .codeviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "one line per render pass")

	rootCmd.SetVersionTemplate(`codeviz {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// formatter picks the pass formatter from the global flags.
func formatter() output.Formatter {
	if quiet {
		return output.NewFormatter(output.VerbosityQuiet)
	}
	return output.NewFormatter(output.GetDefaultVerbosity())
}
