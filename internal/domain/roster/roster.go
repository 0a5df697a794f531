package roster

import (
	"fmt"
	"math/rand/v2"

	"github.com/okian/lobby/internal/domain/catalog"
)

// Size is the number of slots in a full roster: two teams, five roles each.
const Size = 10

// Roster is the mutable selection state of one lobby. It is not safe for
// concurrent use; callers serialize access per session.
type Roster struct {
	slots []Slot
}

// Sample draws count distinct champions from cat without replacement using
// rng. The first half goes to Blue and the second half to Red, each in role
// order. count must equal Size and must not exceed the catalog.
func Sample(cat catalog.Catalog, count int, rng *rand.Rand) (*Roster, error) {
	if count != Size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidRosterSize, count, Size)
	}
	if count > cat.Len() {
		return nil, fmt.Errorf("%w: need %d champions, catalog has %d", ErrInsufficientCatalogSize, count, cat.Len())
	}

	// Partial Fisher-Yates over catalog positions.
	pos := make([]int, cat.Len())
	for i := range pos {
		pos[i] = i
	}
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(pos)-i)
		pos[i], pos[j] = pos[j], pos[i]
	}

	r := &Roster{slots: make([]Slot, 0, count)}
	half := count / len(Teams)
	for ti, team := range Teams {
		for ri, role := range Roles {
			r.slots = append(r.slots, Slot{
				Team:     team,
				Role:     role,
				Champion: cat.At(pos[ti*half+ri]),
			})
		}
	}
	return r, nil
}

// Slots returns a copy of all slots: blue top..sup, then red top..sup.
func (r *Roster) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Team returns the slots of one team in role order.
func (r *Roster) Team(team Team) []Slot {
	out := make([]Slot, 0, len(Roles))
	for _, s := range r.slots {
		if s.Team == team {
			out = append(out, s)
		}
	}
	return out
}

// Champions returns the selected champions in slot order.
func (r *Roster) Champions() []string {
	out := make([]string, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.Champion
	}
	return out
}

// Slot looks up a slot by key.
func (r *Roster) Slot(key SlotKey) (Slot, error) {
	i := r.find(key)
	if i < 0 {
		return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}
	return r.slots[i], nil
}

// Select sets the champion of a slot. The champion must belong to cat; the
// same champion may sit in several slots.
func (r *Roster) Select(key SlotKey, champion string, cat catalog.Catalog) error {
	i := r.find(key)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}
	if !cat.Contains(champion) {
		return fmt.Errorf("%w: %q", ErrUnknownChampion, champion)
	}
	r.slots[i].Champion = champion
	return nil
}

// Duplicates lists champions picked in more than one slot, in first-seen order.
func (r *Roster) Duplicates() []string {
	seen := make(map[string]int, len(r.slots))
	var dups []string
	for _, s := range r.slots {
		seen[s.Champion]++
		if seen[s.Champion] == 2 {
			dups = append(dups, s.Champion)
		}
	}
	return dups
}

// Shared reports whether the champion in key also sits in another slot.
func (r *Roster) Shared(key SlotKey) bool {
	i := r.find(key)
	if i < 0 {
		return false
	}
	for j, s := range r.slots {
		if j != i && s.Champion == r.slots[i].Champion {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (r *Roster) Clone() *Roster {
	return &Roster{slots: r.Slots()}
}

func (r *Roster) find(key SlotKey) int {
	for i, s := range r.slots {
		if s.Key() == key {
			return i
		}
	}
	return -1
}
