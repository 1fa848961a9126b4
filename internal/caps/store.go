// Package caps persists user-confirmed budget caps per month per category.
package caps

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/finlens-dev/finlens/internal/state"
)

// StoreKey is the versioned persistence key for the caps snapshot.
const StoreKey = "capsByMonthV1"

// Store holds caps keyed by month then category. SetCap is the sole
// mutator; caps are never auto-deleted or rolled over between months.
type Store struct {
	kv   *state.Store
	caps map[string]map[string]int64
}

// Open loads the caps snapshot from the state store, starting empty when no
// snapshot exists.
func Open(kv *state.Store) (*Store, error) {
	s := &Store{kv: kv, caps: make(map[string]map[string]int64)}

	data, ok, err := kv.Get(StoreKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := yaml.Unmarshal(data, &s.caps); err != nil {
			return nil, fmt.Errorf("parsing caps snapshot: %w", err)
		}
		if s.caps == nil {
			s.caps = make(map[string]map[string]int64)
		}
	}
	return s, nil
}

// SetCap records a cap and persists immediately. Amount validation is the
// caller's job; the store stays permissive.
func (s *Store) SetCap(month, category string, amount int64) error {
	byCategory := s.caps[month]
	if byCategory == nil {
		byCategory = make(map[string]int64)
		s.caps[month] = byCategory
	}
	byCategory[category] = amount
	return s.persist()
}

// ForMonth returns a copy of the caps set for a month.
func (s *Store) ForMonth(month string) map[string]int64 {
	out := make(map[string]int64, len(s.caps[month]))
	for category, amount := range s.caps[month] {
		out[category] = amount
	}
	return out
}

// Months returns all months with at least one cap, sorted ascending.
func (s *Store) Months() []string {
	months := make([]string, 0, len(s.caps))
	for m := range s.caps {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

func (s *Store) persist() error {
	data, err := yaml.Marshal(s.caps)
	if err != nil {
		return fmt.Errorf("marshaling caps snapshot: %w", err)
	}
	return s.kv.Put(StoreKey, data)
}
