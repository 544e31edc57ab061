package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/extracto/internal/config"
	"github.com/cleared-dev/extracto/internal/gitops"
	"github.com/cleared-dev/extracto/internal/importer"
)

func newInitCommand() *cobra.Command {
	var force bool
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an extracto workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, force, !noGit)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing "+config.FileName)
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(dir string, force, useGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	dirs := []string{
		importer.ImportDir,
		importer.ProcessedDir,
		NormalizedDir,
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Keep the empty import/ dir when the workspace is versioned.
	if err := os.WriteFile(filepath.Join(dir, importer.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !useGit {
		fmt.Printf("Initialized extracto workspace at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}
	hash, err := commitIfChanged(dir, "init: extracto workspace", cfg)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	if hash == "" {
		fmt.Printf("Initialized extracto workspace at %s\n", dir)
		return nil
	}
	fmt.Printf("Initialized extracto workspace at %s (%s)\n", dir, hash)
	return nil
}

// commitIfChanged commits everything in dir under the configured author.
// It returns an empty hash when there was nothing to commit.
func commitIfChanged(dir, message string, cfg *config.Config) (string, error) {
	changed, err := gitops.HasChanges(dir)
	if err != nil || !changed {
		return "", err
	}
	return gitops.CommitAll(dir, message, gitops.Author{
		Name:  cfg.Git.AuthorName,
		Email: cfg.Git.AuthorEmail,
	})
}
