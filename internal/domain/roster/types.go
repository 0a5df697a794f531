// Package roster models the ten-slot team selection of a match lobby.
package roster

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Team identifies one side of the match.
type Team string

// Teams.
const (
	Blue Team = "blue"
	Red  Team = "red"
)

// Teams lists both sides in display order.
var Teams = []Team{Blue, Red}

// Label is the display name of the team, e.g. "Blue".
func (t Team) Label() string { return title(string(t)) }

// Valid reports whether t is a known team.
func (t Team) Valid() bool { return t == Blue || t == Red }

// Role is a lane position; each team fills every role exactly once.
type Role string

// Roles.
const (
	Top     Role = "top"
	Jungle  Role = "jg"
	Mid     Role = "mid"
	Carry   Role = "adc"
	Support Role = "sup"
)

// Roles lists the roles in row order.
var Roles = []Role{Top, Jungle, Mid, Carry, Support}

var roleNames = map[Role]string{
	Top:     "top lane",
	Jungle:  "jungle",
	Mid:     "mid lane",
	Carry:   "bot carry",
	Support: "support",
}

// Label is the display name of the role, e.g. "Mid Lane".
func (r Role) Label() string { return title(roleNames[r]) }

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// SlotKey identifies a slot as "<team>-<role>", e.g. "red-jg".
type SlotKey string

// KeyOf builds the key for team and role.
func KeyOf(team Team, role Role) SlotKey {
	return SlotKey(string(team) + "-" + string(role))
}

// Parse splits a key into its team and role.
func (k SlotKey) Parse() (Team, Role, bool) {
	team, role, ok := strings.Cut(string(k), "-")
	if !ok {
		return "", "", false
	}
	t, r := Team(team), Role(role)
	if !t.Valid() || !r.Valid() {
		return "", "", false
	}
	return t, r, true
}

// Slot is one (team, role) selection unit.
type Slot struct {
	Team     Team   `json:"team"`
	Role     Role   `json:"role"`
	Champion string `json:"champion"`
}

// Key returns the slot key.
func (s Slot) Key() SlotKey { return KeyOf(s.Team, s.Role) }

// title upper-cases the first letter of each word. Casers keep state, so a
// fresh one is built per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}
