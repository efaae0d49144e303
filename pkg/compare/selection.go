// Package compare holds the multi-batch comparison selection and its request.
package compare

import "slices"

// MinBatches is the number of distinct batches a comparison needs.
const MinBatches = 2

// Selection is the set of batch ids chosen for comparison.
// Ids keep the order in which they were first selected.
type Selection struct {
	ids []int
}

// NewSelection returns a selection seeded with ids. Duplicates are dropped.
func NewSelection(ids ...int) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Toggle adds id if absent and removes it if present.
// It reports whether id is selected afterwards.
func (s *Selection) Toggle(id int) bool {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Add selects id. Adding an id twice has no effect.
func (s *Selection) Add(id int) {
	if !s.Contains(id) {
		s.ids = append(s.ids, id)
	}
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []int {
	return slices.Clone(s.ids)
}

// Len returns the number of selected batches.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Ready reports whether enough batches are selected to run a comparison.
func (s *Selection) Ready() bool {
	return len(s.ids) >= MinBatches
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.ids = nil
}
