// Package ledger persists the imported working set of transactions under the
// data directory. Each import replaces the set wholesale; there is no merge
// or cross-import deduplication.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/finlens-dev/finlens/internal/model"
)

const fileName = "transactions.csv"

// Service reads and replaces the transaction working set.
type Service struct {
	dataRoot string
}

// NewService creates a ledger Service rooted at the data directory.
func NewService(dataRoot string) *Service {
	return &Service{dataRoot: dataRoot}
}

// Replace overwrites the working set with the given transactions.
func (s *Service) Replace(txns []model.Tx) error {
	if err := os.MkdirAll(s.dataRoot, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating transactions file: %w", err)
	}
	defer f.Close()

	if err := WriteTxs(f, txns); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	return nil
}

// Read returns the current working set, or nil when nothing has been
// imported yet.
func (s *Service) Read() ([]model.Tx, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()

	txns, err := ReadTxs(f)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return txns, nil
}

func (s *Service) path() string {
	return filepath.Join(s.dataRoot, fileName)
}
