package schema

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Number is the value type a Counter can accumulate.
type Number interface {
	~int | ~int64 | ~float64
}

// Counter is a keyed accumulator. Reads of absent keys yield zero.
type Counter[K comparable, V Number] map[K]V

// Add increments key k by v.
func (c Counter[K, V]) Add(k K, v V) {
	c[k] += v
}

// Get returns the value for k, or zero when absent.
func (c Counter[K, V]) Get(k K) V {
	return c[k]
}

// Total sums all values.
func (c Counter[K, V]) Total() V {
	var total V
	for _, v := range c {
		total += v
	}
	return total
}

// Clone returns an independent copy.
func (c Counter[K, V]) Clone() Counter[K, V] {
	out := make(Counter[K, V], len(c))
	maps.Copy(out, c)
	return out
}

// SortedKeys returns the keys of an ordered counter in ascending order.
func SortedKeys[K cmp.Ordered, V Number](c Counter[K, V]) []K {
	return slices.Sorted(maps.Keys(c))
}

// Entry is a single key/value pair taken from a Counter.
type Entry[K comparable, V Number] struct {
	Key   K
	Value V
}

// TopN returns up to n entries ordered by value descending, then key ascending.
// A non-positive n returns every entry.
func TopN[K cmp.Ordered, V Number](c Counter[K, V], n int) []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(c))
	for k, v := range c {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry[K, V]) int {
		if byValue := cmp.Compare(b.Value, a.Value); byValue != 0 {
			return byValue
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// StringSet is an unordered set of strings. It marshals to a sorted JSON array.
type StringSet map[string]struct{}

// NewStringSet returns a set holding the given items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts item.
func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

// Has reports whether item is present.
func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the set cardinality.
func (s StringSet) Len() int {
	return len(s)
}

// Union adds every member of other to s.
func (s StringSet) Union(other StringSet) {
	for item := range other {
		s.Add(item)
	}
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	maps.Copy(out, s)
	return out
}

// MarshalJSON implements json.Marshaler.
func (s StringSet) MarshalJSON() ([]byte, error) {
	items := s.Sorted()
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to decode string set: %w", err)
	}
	*s = NewStringSet(items...)
	return nil
}

// DailySets maps a YYYY-MM-DD date to the set of projects touched that day.
type DailySets map[string]StringSet

// Add records project under date.
func (d DailySets) Add(date, project string) {
	set, ok := d[date]
	if !ok {
		set = make(StringSet)
		d[date] = set
	}
	set.Add(project)
}

// Clone returns a deep copy.
func (d DailySets) Clone() DailySets {
	out := make(DailySets, len(d))
	for date, set := range d {
		out[date] = set.Clone()
	}
	return out
}
