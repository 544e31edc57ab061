package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/extracto/internal/config"
	"github.com/cleared-dev/extracto/internal/runlog"
)

type normalizeOptions struct {
	out        string
	format     string
	configPath string
	sheet      string
	repoDir    string
}

func newNormalizeCommand(flags *rootFlags) *cobra.Command {
	var opts normalizeOptions

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Normalize one bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(opts.repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			opts.repoDir = absDir
			return runNormalize(args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: <file><suffix><ext> next to the input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: xlsx, csv or sqlite (default from config)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: <repo>/"+config.FileName+" if present)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet to read (default: first)")
	cmd.Flags().StringVar(&opts.repoDir, "repo", ".", "directory whose logs/ records the run")

	return cmd
}

func runNormalize(src string, opts normalizeOptions, flags *rootFlags) error {
	cfg, err := loadConfig(opts.repoDir, opts.configPath)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.sheet != "" {
		cfg.Input.Sheet = opts.sheet
	}

	r, err := newRunner(cfg, flags.logger())
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = r.outputPath(src, "")
	}

	table, procErr := r.process(src, out)
	if err := runlog.Append(opts.repoDir, []runlog.Entry{r.entry(src, out, table, procErr)}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}
	if procErr != nil {
		return procErr
	}

	fmt.Printf("Read %d movements from %s\n", table.Len(), src)
	fmt.Printf("Wrote %s\n", out)
	if n := len(table.Warnings); n > 0 {
		fmt.Printf("%d warnings\n", n)
	}
	return nil
}

// loadConfig reads path, or <repoDir>/extracto.yaml when path is empty,
// falling back to defaults if that file does not exist.
func loadConfig(repoDir, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(filepath.Join(repoDir, config.FileName))
}
