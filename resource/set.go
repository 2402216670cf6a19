package resource

import (
	"fmt"
	"iter"
	"regexp"

	json "github.com/goccy/go-json"
)

// Set is an ordered collection of resources without duplicate IDs.
//
// A Set is not safe for concurrent mutation.
type Set struct {
	items []Resource
	index map[ID]int
}

// NewSet returns a set holding rs. Later duplicates are dropped.
func NewSet(rs ...Resource) *Set {
	s := &Set{index: make(map[ID]int, len(rs))}
	for _, r := range rs {
		s.Add(r)
	}
	return s
}

// Add appends r unless a resource with the same ID is present.
// It reports whether r was added.
func (s *Set) Add(r Resource) bool {
	if s.index == nil {
		s.index = make(map[ID]int)
	}
	if _, ok := s.index[r.id]; ok {
		return false
	}
	s.index[r.id] = len(s.items)
	s.items = append(s.items, r)
	return true
}

// Get returns the resource with the given ID.
func (s *Set) Get(id ID) (Resource, bool) {
	if s == nil {
		return Resource{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Resource{}, false
	}
	return s.items[i], true
}

// Contains reports whether a resource with the given ID is present.
func (s *Set) Contains(id ID) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the number of resources.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Resources returns a copy of the resources in order.
func (s *Set) Resources() []Resource {
	if s == nil {
		return nil
	}
	out := make([]Resource, len(s.items))
	copy(out, s.items)
	return out
}

// All iterates the resources in order.
func (s *Set) All() iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		if s == nil {
			return
		}
		for _, r := range s.items {
			if !yield(r) {
				return
			}
		}
	}
}

// Union returns a new set with the entries of s followed by the entries of
// other whose IDs are not in s. Entries of s take precedence.
func (s *Set) Union(other *Set) *Set {
	out := NewSet(s.Resources()...)
	for r := range other.All() {
		out.Add(r)
	}
	return out
}

// Filter returns the resources for which keep returns true.
func (s *Set) Filter(keep func(Resource) bool) *Set {
	out := NewSet()
	for r := range s.All() {
		if keep(r) {
			out.Add(r)
		}
	}
	return out
}

// FilterByName returns the resources named name, in any pool.
func (s *Set) FilterByName(name string) *Set {
	return s.Filter(func(r Resource) bool { return r.id.Name == name })
}

// FilterByPool returns the resources owned by pool.
func (s *Set) FilterByPool(pool string) *Set {
	return s.Filter(func(r Resource) bool { return r.id.Pool == pool })
}

// FilterByNameRegex returns the resources whose name matches expr.
func (s *Set) FilterByNameRegex(expr string) (*Set, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return s.Filter(func(r Resource) bool { return re.MatchString(r.id.Name) }), nil
}

// entry is the transport form of a resource. Values never travel in a
// directory listing.
type entry struct {
	ID   ID     `json:"id"`
	Kind string `json:"kind"`
}

// MarshalJSON encodes the set as a list of {id, kind} entries.
func (s *Set) MarshalJSON() ([]byte, error) {
	entries := make([]entry, 0, s.Len())
	for r := range s.All() {
		entries = append(entries, entry{ID: r.id, Kind: r.kind.String()})
	}
	return json.Marshal(entries)
}

// DecodeSet decodes the transport form into remote stubs bound to c.
// Every entry becomes a stub, whatever kind it had on the sending side.
func DecodeSet(data []byte, c Connector) (*Set, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode resource set: %w", err)
	}
	s := NewSet()
	for _, e := range entries {
		if e.ID.Pool == "" || e.ID.Name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, e.ID.String())
		}
		s.Add(NewRemote(e.ID, c))
	}
	return s, nil
}
