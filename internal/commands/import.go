package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/extracto/internal/gitops"
	"github.com/cleared-dev/extracto/internal/importer"
	"github.com/cleared-dev/extracto/internal/model"
	"github.com/cleared-dev/extracto/internal/runlog"
)

// NormalizedDir is where import writes its output.
const NormalizedDir = "normalized"

func newImportCommand(flags *rootFlags) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalize every statement waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(absDir, flags)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")

	return cmd
}

func runImport(repoRoot string, flags *rootFlags) error {
	cfg, err := loadConfig(repoRoot, "")
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, flags.logger())
	if err != nil {
		return err
	}

	files, err := importer.Scan(repoRoot, r.readers)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No files to import in %s\n", filepath.Join(repoRoot, importer.ImportDir))
		return nil
	}

	outDir := filepath.Join(repoRoot, NormalizedDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s dir: %w", NormalizedDir, err)
	}

	var entries []runlog.Entry
	failed := 0
	// Sources sharing a base name, such as a.xlsx and a.csv, map to the
	// same output; only the first one is written.
	written := make(map[string]string)
	for _, f := range files {
		out := r.outputPath(f.Path, outDir)
		var table *model.Table
		var err error
		if prev, ok := written[out]; ok {
			err = fmt.Errorf("output %s already written from %s", filepath.Base(out), prev)
		} else {
			table, err = r.process(f.Path, out)
		}
		if err == nil {
			written[out] = f.Name
			err = importer.MarkProcessed(repoRoot, f.Name)
		}
		entries = append(entries, r.entry(f.Path, out, table, err))

		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", f.Name, err)
			continue
		}
		fmt.Printf("%s: %d movements, %d warnings -> %s\n", f.Name, table.Len(), len(table.Warnings), out)
	}

	if err := runlog.Append(repoRoot, entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}

	fmt.Printf("Imported %d of %d files\n", len(files)-failed, len(files))

	if failed < len(files) && cfg.Git.AutoCommit && gitops.IsRepo(repoRoot) {
		msg := fmt.Sprintf("import: %d of %d files normalized", len(files)-failed, len(files))
		hash, err := commitIfChanged(repoRoot, msg, cfg)
		if err != nil {
			return fmt.Errorf("committing import: %w", err)
		}
		if hash != "" {
			fmt.Printf("Committed %s\n", hash)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
