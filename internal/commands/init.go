package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finlens-dev/finlens/internal/config"
	"github.com/finlens-dev/finlens/internal/gitops"
	"github.com/finlens-dev/finlens/internal/taxonomy"
)

func newInitCommand() *cobra.Command {
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new FinLens data directory",
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

			return runInit(absDir, noGit)
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git initialization")

	return cmd
}

func runInit(dir string, noGit bool) error {
	for _, d := range []string{importDir, stateDir, "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := taxonomy.Save(filepath.Join(dir, taxonomyFile), taxonomy.DefaultChart()); err != nil {
		return fmt.Errorf("writing taxonomy: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, importDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if noGit || !cfg.Git.AutoCommit {
		fmt.Printf("Initialized FinLens data directory at %s\n", dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: git init failed: %v\n", err)
		fmt.Printf("Initialized FinLens data directory at %s\n", dir)
		return nil
	}

	hash, err := gitops.CommitAll(dir, "init: new FinLens data directory", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: initial commit failed: %v\n", err)
		fmt.Printf("Initialized FinLens data directory at %s\n", dir)
		return nil
	}

	fmt.Printf("Initialized FinLens data directory at %s (%s)\n", dir, hash)
	return nil
}
