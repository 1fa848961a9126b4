package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/finlens-dev/finlens/internal/auditlog"
	"github.com/finlens-dev/finlens/internal/gitops"
	"github.com/finlens-dev/finlens/internal/importer"
)

func newImportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV export, replacing the current transaction set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(dir, args[0])
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")

	return cmd
}

func runImport(dir, file string) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	res, err := importer.Import(string(raw), e.tax)
	if err != nil {
		return fmt.Errorf("import failed, no transactions loaded: %w", err)
	}

	if err := e.ledger.Replace(res.Transactions); err != nil {
		return err
	}

	skipped := 0
	reclassified := 0
	for _, issue := range res.Issues {
		if issue.Kind == importer.IssueUnresolvedCategory {
			reclassified++
		} else {
			skipped++
		}
	}

	fmt.Printf("%d rows imported, %d skipped", len(res.Transactions), skipped)
	if reclassified > 0 {
		fmt.Printf(" (%d reclassified as %s)", reclassified, "Uncategorized")
	}
	fmt.Println()

	for _, issue := range res.Issues {
		fmt.Printf("  %s\n", issue.Error())
	}
	if len(res.MonthsAvailable) > 0 {
		fmt.Printf("Months available: %s .. %s\n",
			res.MonthsAvailable[0], res.MonthsAvailable[len(res.MonthsAvailable)-1])
	}

	hash := ""
	if e.cfg.Git.AutoCommit && gitops.IsRepo(e.dir) {
		hash, err = gitops.CommitAll(e.dir, "import: "+filepath.Base(file), e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
			hash = ""
		}
	}

	return auditlog.Append(e.dir, auditlog.Entry{
		Timestamp:  time.Now(),
		File:       filepath.Base(file),
		Imported:   len(res.Transactions),
		Skipped:    skipped,
		CommitHash: hash,
	})
}
