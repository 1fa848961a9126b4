package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/finlens-dev/finlens/internal/config"
	"github.com/finlens-dev/finlens/internal/ledger"
	"github.com/finlens-dev/finlens/internal/model"
	"github.com/finlens-dev/finlens/internal/state"
	"github.com/finlens-dev/finlens/internal/taxonomy"
)

const (
	taxonomyFile = "taxonomy.yaml"
	stateDir     = "state"
	importDir    = "import"
)

// env bundles everything a command needs from an initialized data directory.
type env struct {
	dir    string
	cfg    *config.Config
	tax    *taxonomy.Taxonomy
	ledger *ledger.Service
	kv     *state.Store
}

// openEnv loads config and taxonomy from a data directory created by
// `finlens init`.
func openEnv(dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading %s (run `finlens init` first?): %w", config.FileName, err)
	}

	tax, err := taxonomy.Load(filepath.Join(absDir, taxonomyFile))
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy: %w", err)
	}

	return &env{
		dir:    absDir,
		cfg:    cfg,
		tax:    tax,
		ledger: ledger.NewService(absDir),
		kv:     state.New(filepath.Join(absDir, stateDir)),
	}, nil
}

// knownChildren is the full child list for bulk scope operations: the
// taxonomy's children plus any child actually present in the working set
// (Uncategorized, typically).
func (e *env) knownChildren(txns []model.Tx) []string {
	seen := make(map[string]bool)
	var all []string
	for _, c := range e.tax.AllChildren() {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	for _, tx := range txns {
		if !seen[tx.CategoryChild] {
			seen[tx.CategoryChild] = true
			all = append(all, tx.CategoryChild)
		}
	}
	return all
}

// observedChildren lists distinct child categories in the working set,
// sorted for stable output.
func observedChildren(txns []model.Tx) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range txns {
		if !seen[tx.CategoryChild] {
			seen[tx.CategoryChild] = true
			out = append(out, tx.CategoryChild)
		}
	}
	sort.Strings(out)
	return out
}
