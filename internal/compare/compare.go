// Package compare tracks the listings a user has selected for
// side-by-side comparison. The set is bounded and lives for the
// session; it is never persisted.
package compare

import (
	"sync"

	"homescape/server/internal/models"
)

// MaxSize is the maximum number of listings that can be compared at once.
const MaxSize = 3

// Reject reasons returned by Add.
const (
	ReasonDuplicate    = "duplicate"
	ReasonLimitReached = "limit reached"
)

// AddResult reports whether an Add was accepted and why not.
type AddResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// Set is an ordered set of up to MaxSize distinct listing ids.
// Membership checks go through a map so they stay O(1); the slice
// keeps insertion order for projection.
type Set struct {
	mu      sync.RWMutex
	order   []int64
	members map[int64]struct{}
}

// NewSet returns an empty comparison set.
func NewSet() *Set {
	return &Set{
		members: make(map[int64]struct{}),
	}
}

// Add appends id to the set. Duplicate ids and adds beyond MaxSize are
// rejected and leave the set unchanged.
func (s *Set) Add(id int64) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; ok {
		return AddResult{Accepted: false, Reason: ReasonDuplicate}
	}
	if len(s.order) >= MaxSize {
		return AddResult{Accepted: false, Reason: ReasonLimitReached}
	}

	s.order = append(s.order, id)
	s.members[id] = struct{}{}
	return AddResult{Accepted: true}
}

// Remove drops id from the set. Removing an absent id is a no-op.
func (s *Set) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return
	}
	delete(s.members, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.members = make(map[int64]struct{})
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// Len returns the current set size.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// IDs returns the selected ids in insertion order.
func (s *Set) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, len(s.order))
	copy(ids, s.order)
	return ids
}

// ToListings projects the set onto full listing records, preserving
// insertion order. Ids with no matching listing are silently dropped,
// which keeps the projection safe against stale selections.
func (s *Set) ToListings(all []models.Listing) []models.Listing {
	byID := make(map[int64]models.Listing, len(all))
	for _, l := range all {
		byID[l.ID] = l
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Listing, 0, len(s.order))
	for _, id := range s.order {
		if l, ok := byID[id]; ok {
			result = append(result, l)
		}
	}
	return result
}
