// package prefs persists the user's favorites and downloads sets.
//
// Both sets are loaded once at startup and written through on every
// mutation. Membership is keyed solely by item id; ids are never pruned when
// items disappear from the catalog, so stale ids are simply inert until the
// id reappears.
package prefs

import (
	"encoding/json"

	"github.com/desertthunder/damx/internal/models"
)

// Set is an unordered collection of item ids.
type Set map[models.ItemID]struct{}

// NewSet creates a Set containing the given ids.
func NewSet(ids ...models.ItemID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member of the set.
func (s Set) Has(id models.ItemID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set. Inserting an existing id is a no-op.
func (s Set) Add(id models.ItemID) {
	s[id] = struct{}{}
}

// Remove deletes id from the set if present.
func (s Set) Remove(id models.ItemID) {
	delete(s, id)
}

// IDs returns the members of the set in unspecified order.
func (s Set) IDs() []models.ItemID {
	ids := make([]models.ItemID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// MarshalJSON encodes the set as a JSON array of ids.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// DecodeSet decodes a JSON array of ids into a Set.
//
// Malformed persisted data must never block startup: any decode failure
// yields an empty set.
func DecodeSet(data []byte) Set {
	var ids []models.ItemID
	if err := json.Unmarshal(data, &ids); err != nil {
		return NewSet()
	}
	return NewSet(ids...)
}
