package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel pair assigned when a CSV row's category cannot be resolved.
// Classification failure is a normal, representable state, not an error.
const (
	UncategorizedParent = "Uncategorized"
	UncategorizedChild  = "Uncategorized"
)

// Parent is one entry in taxonomy.yaml: a parent category and its children.
type Parent struct {
	Name     string   `yaml:"name"`
	Children []string `yaml:"children"`
}

type file struct {
	Categories []Parent `yaml:"categories"`
}

// Taxonomy is the fixed two-level parent -> children category mapping,
// loaded once at startup and never mutated afterwards. Every child name
// appears under exactly one parent.
type Taxonomy struct {
	parents  []string
	children map[string][]string
	parentOf map[string]string
}

// New builds a Taxonomy from parent entries. It rejects duplicate parent
// names and children appearing under more than one parent.
func New(parents []Parent) (*Taxonomy, error) {
	t := &Taxonomy{
		children: make(map[string][]string, len(parents)),
		parentOf: make(map[string]string),
	}
	for _, p := range parents {
		if _, ok := t.children[p.Name]; ok {
			return nil, fmt.Errorf("duplicate parent category %q", p.Name)
		}
		t.parents = append(t.parents, p.Name)
		t.children[p.Name] = append([]string(nil), p.Children...)
		for _, c := range p.Children {
			if prev, ok := t.parentOf[c]; ok {
				return nil, fmt.Errorf("child category %q appears under both %q and %q", c, prev, p.Name)
			}
			t.parentOf[c] = p.Name
		}
	}
	return t, nil
}

// Load reads a taxonomy.yaml file from disk.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	t, err := New(f.Categories)
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy: %w", err)
	}
	return t, nil
}

// Save writes parent entries to a taxonomy.yaml file.
func Save(path string, parents []Parent) error {
	data, err := yaml.Marshal(file{Categories: parents})
	if err != nil {
		return fmt.Errorf("marshaling taxonomy: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing taxonomy: %w", err)
	}
	return nil
}

// Parents returns all parent category names in declaration order.
func (t *Taxonomy) Parents() []string {
	return t.parents
}

// ChildrenOf returns the ordered children of a parent, or nil if unknown.
func (t *Taxonomy) ChildrenOf(parent string) []string {
	return t.children[parent]
}

// ParentOf returns the parent of a child category.
func (t *Taxonomy) ParentOf(child string) (string, bool) {
	p, ok := t.parentOf[child]
	return p, ok
}

// IsChild reports whether child is a legal child of parent.
func (t *Taxonomy) IsChild(parent, child string) bool {
	return t.parentOf[child] == parent && parent != ""
}

// AllChildren returns every child name, grouped by parent declaration order.
func (t *Taxonomy) AllChildren() []string {
	var all []string
	for _, p := range t.parents {
		all = append(all, t.children[p]...)
	}
	return all
}

// Resolve validates a parent/child pair against the taxonomy. A child-only
// lookup (empty parent) resolves through the child's unique parent.
// Unresolvable pairs fall back to the Uncategorized sentinel, with ok=false.
func (t *Taxonomy) Resolve(parent, child string) (string, string, bool) {
	if parent == "" {
		if p, ok := t.parentOf[child]; ok {
			return p, child, true
		}
		return UncategorizedParent, UncategorizedChild, false
	}
	if t.IsChild(parent, child) {
		return parent, child, true
	}
	return UncategorizedParent, UncategorizedChild, false
}
