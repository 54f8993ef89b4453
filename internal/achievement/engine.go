package achievement

import (
	"github.com/limbo/drip/internal/stats"
	"github.com/limbo/drip/pkg/entity"
)

// UnlockedSet holds achievement ids already unlocked. Ids are only ever
// added.
type UnlockedSet map[string]struct{}

func NewUnlockedSet(ids ...string) UnlockedSet {
	s := make(UnlockedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s UnlockedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was new.
func (s UnlockedSet) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Evaluate returns the ids whose predicates hold for p and that are not in
// unlocked, in catalog order. unlocked is not modified.
func Evaluate(p stats.Progress, unlocked UnlockedSet) []string {
	var ids []string
	for _, d := range definitions {
		if d.Predicate == nil || unlocked.Has(d.ID) {
			continue
		}
		if d.Predicate(p) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

type Status struct {
	entity.Achievement
	Unlocked bool `json:"unlocked"`
}

// Statuses lists every achievement with its unlock state.
func Statuses(unlocked UnlockedSet) []Status {
	result := make([]Status, 0, len(definitions))
	for _, d := range definitions {
		result = append(result, Status{Achievement: d.Achievement, Unlocked: unlocked.Has(d.ID)})
	}
	return result
}
