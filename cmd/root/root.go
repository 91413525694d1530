// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fintastic/extract/internal/config"
	"fintastic/extract/internal/container"
	"fintastic/extract/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintastic-extract",
		Short: "Extract and classify transactions from bank statements and notification emails.",
		Long: `fintastic-extract turns bank statement PDFs and bank notification emails into
deduplicated transaction candidates, and runs gig-income heuristics over
categorized transaction history.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fintastic-extract!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}

			appContainer, err = container.NewContainer(cfg)
			return err
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// GetContainer returns the wired dependency container. Nil before the root
// command's PersistentPreRun has executed.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the container's logger, falling back to the default when
// the container is not yet built.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.GetLogger()
}

// Delimiter returns the configured CSV delimiter rune.
func Delimiter() rune {
	if appContainer != nil {
		return []rune(appContainer.GetConfig().CSV.Delimiter)[0]
	}
	return ','
}

// IncludeHeaders reports whether CSV output carries a header row.
func IncludeHeaders() bool {
	if appContainer != nil {
		return appContainer.GetConfig().CSV.IncludeHeaders
	}
	return true
}
