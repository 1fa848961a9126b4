// Package scope tracks which child categories are excluded from analytics,
// either globally or per month. State persists on every mutation and is
// migrated once from the legacy flat excluded-children list.
package scope

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/finlens-dev/finlens/internal/state"
	"github.com/finlens-dev/finlens/internal/taxonomy"
)

// Persistence keys. LegacyKey held a flat []string of excluded children
// before modes existed; it is read once, folded into the global set, and
// deleted.
const (
	StoreKey  = "analyticsScopeV2"
	LegacyKey = "excludedChildren"
)

// Mode selects which exclusion namespace is active. Switching modes changes
// which set is consulted, never the sets themselves.
type Mode string

const (
	ModeGlobal   Mode = "global"
	ModePerMonth Mode = "per-month"
)

type snapshot struct {
	Mode    Mode                `yaml:"mode"`
	Global  []string            `yaml:"global"`
	ByMonth map[string][]string `yaml:"byMonth"`
}

// Store is the analytics scope state machine. Exclusion is tracked at
// child-category granularity only; parent operations expand through the
// taxonomy.
type Store struct {
	kv      *state.Store
	tax     *taxonomy.Taxonomy
	mode    Mode
	global  map[string]struct{}
	byMonth map[string]map[string]struct{}
}

// Open loads the scope snapshot, or builds the initial state by migrating
// the legacy key. A malformed legacy snapshot is left in place untouched and
// the store starts with nothing excluded; migration never fails the open.
func Open(kv *state.Store, tax *taxonomy.Taxonomy) (*Store, error) {
	s := &Store{
		kv:      kv,
		tax:     tax,
		mode:    ModeGlobal,
		global:  make(map[string]struct{}),
		byMonth: make(map[string]map[string]struct{}),
	}

	data, ok, err := kv.Get(StoreKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var snap snapshot
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing scope snapshot: %w", err)
		}
		if snap.Mode == ModePerMonth {
			s.mode = ModePerMonth
		}
		for _, c := range snap.Global {
			s.global[c] = struct{}{}
		}
		for m, children := range snap.ByMonth {
			set := make(map[string]struct{}, len(children))
			for _, c := range children {
				set[c] = struct{}{}
			}
			s.byMonth[m] = set
		}
		return s, nil
	}

	if err := s.migrateLegacy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateLegacy() error {
	data, ok, err := s.kv.Get(LegacyKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var excluded []string
	if err := yaml.Unmarshal(data, &excluded); err != nil {
		// Malformed legacy data: abandon migration, keep the legacy key.
		return nil
	}

	for _, c := range excluded {
		s.global[c] = struct{}{}
	}
	if err := s.persist(); err != nil {
		return err
	}
	return s.kv.Delete(LegacyKey)
}

// Mode returns the active mode.
func (s *Store) Mode() Mode {
	return s.mode
}

// SetMode switches the active exclusion namespace. Existing sets are kept
// as-is on both sides.
func (s *Store) SetMode(mode Mode) error {
	if mode != ModeGlobal && mode != ModePerMonth {
		return fmt.Errorf("unknown scope mode %q", mode)
	}
	s.mode = mode
	return s.persist()
}

// ToggleChild flips the child's membership in the active exclusion set.
// month is required in per-month mode and ignored in global mode.
func (s *Store) ToggleChild(child, month string) error {
	set, err := s.activeSet(month)
	if err != nil {
		return err
	}
	if _, excluded := set[child]; excluded {
		delete(set, child)
	} else {
		set[child] = struct{}{}
	}
	return s.persist()
}

// IncludeAll clears the active exclusion set, returning to the default state.
func (s *Store) IncludeAll(month string) error {
	if s.mode == ModeGlobal {
		s.global = make(map[string]struct{})
		return s.persist()
	}
	if month == "" {
		return errMonthRequired()
	}
	delete(s.byMonth, month)
	return s.persist()
}

// ExcludeAll replaces the active set with every known child. The caller
// supplies the child list; the store does not track "all possible children"
// itself.
func (s *Store) ExcludeAll(month string, allChildren []string) error {
	set, err := s.activeSet(month)
	if err != nil {
		return err
	}
	for c := range set {
		delete(set, c)
	}
	for _, c := range allChildren {
		set[c] = struct{}{}
	}
	return s.persist()
}

// Reset is IncludeAll under another name: back to nothing excluded.
func (s *Store) Reset(month string) error {
	return s.IncludeAll(month)
}

// ExcludeParent adds every child of the parent to the active exclusion set.
// Already-excluded children are left untouched.
func (s *Store) ExcludeParent(parent, month string) error {
	set, err := s.activeSet(month)
	if err != nil {
		return err
	}
	for _, c := range s.tax.ChildrenOf(parent) {
		set[c] = struct{}{}
	}
	return s.persist()
}

// IncludeParent removes every child of the parent from the active exclusion
// set.
func (s *Store) IncludeParent(parent, month string) error {
	set, err := s.activeSet(month)
	if err != nil {
		return err
	}
	for _, c := range s.tax.ChildrenOf(parent) {
		delete(set, c)
	}
	return s.persist()
}

// ExcludedSet returns a copy of the active exclusion set, resolved by mode.
// month is ignored in global mode.
func (s *Store) ExcludedSet(month string) map[string]struct{} {
	var set map[string]struct{}
	if s.mode == ModeGlobal {
		set = s.global
	} else {
		set = s.byMonth[month]
	}
	out := make(map[string]struct{}, len(set))
	for c := range set {
		out[c] = struct{}{}
	}
	return out
}

// IncludedCount reports how many of allChildren are not excluded for the
// month. Excluded names absent from allChildren do not count against it.
func (s *Store) IncludedCount(month string, allChildren []string) int {
	excluded := s.ExcludedSet(month)
	n := 0
	for _, c := range allChildren {
		if _, skip := excluded[c]; !skip {
			n++
		}
	}
	return n
}

// activeSet returns the live set for mutation, creating the per-month set on
// demand.
func (s *Store) activeSet(month string) (map[string]struct{}, error) {
	if s.mode == ModeGlobal {
		return s.global, nil
	}
	if month == "" {
		return nil, errMonthRequired()
	}
	set := s.byMonth[month]
	if set == nil {
		set = make(map[string]struct{})
		s.byMonth[month] = set
	}
	return set, nil
}

func errMonthRequired() error {
	return fmt.Errorf("month is required in per-month mode")
}

func (s *Store) persist() error {
	snap := snapshot{
		Mode:    s.mode,
		Global:  sortedKeys(s.global),
		ByMonth: make(map[string][]string, len(s.byMonth)),
	}
	for m, set := range s.byMonth {
		if len(set) == 0 {
			continue
		}
		snap.ByMonth[m] = sortedKeys(set)
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling scope snapshot: %w", err)
	}
	return s.kv.Put(StoreKey, data)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
