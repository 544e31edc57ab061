package commands

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/extracto/internal/buildinfo"
)

type rootFlags struct {
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "extracto",
		Short:   "Normalize bank statement spreadsheets",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log header detection and amount details")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newNormalizeCommand(flags))
	rootCmd.AddCommand(newImportCommand(flags))
	rootCmd.AddCommand(newLogCommand())

	return rootCmd
}

// logger returns a stderr logger; warnings always show, details only with
// --verbose.
func (f *rootFlags) logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if f.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
