package model

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

// Member is one entry of the team roster
type Member struct {
	ID   types.AuthorID
	Name string
}

// Roster is the set of members expected to submit an update every period.
// It is loaded from configuration at startup; the service never mutates it.
type Roster struct {
	members []Member
	index   map[types.AuthorID]Member
}

// NewRoster builds a roster from members, rejecting invalid or duplicate IDs
func NewRoster(members []Member) (*Roster, error) {
	index := make(map[types.AuthorID]Member, len(members))
	sorted := make([]Member, len(members))
	copy(sorted, members)

	for _, m := range sorted {
		if err := m.ID.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid roster member")
		}
		if _, exists := index[m.ID]; exists {
			return nil, goerr.New("duplicate roster member", goerr.V("id", m.ID))
		}
		index[m.ID] = m
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &Roster{members: sorted, index: index}, nil
}

// Contains reports whether the author is on the roster
func (r *Roster) Contains(id types.AuthorID) bool {
	_, ok := r.index[id]
	return ok
}

// Members returns all members ordered by ID
func (r *Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

// Expected returns the author IDs against which missing updates are
// evaluated, ordered ascending.
func (r *Roster) Expected() []types.AuthorID {
	out := make([]types.AuthorID, len(r.members))
	for i, m := range r.members {
		out[i] = m.ID
	}
	return out
}

// Size returns the number of roster members
func (r *Roster) Size() int {
	return len(r.members)
}
