// Package site renders the lobby page and handles its form posts.
package site

import (
	"strconv"

	"github.com/okian/lobby/internal/domain/catalog"
	"github.com/okian/lobby/internal/domain/icons"
	"github.com/okian/lobby/internal/domain/prediction"
	"github.com/okian/lobby/internal/domain/roster"
	"github.com/okian/lobby/internal/domain/types"
)

// Page copy.
const (
	Title           = "Match Lobby Win Prediction"
	Description     = "Predict the winner of a League of Legends match using only champion info"
	TeamsHeader     = "Choose the teams"
	BluePrompt      = "Choose the blue champions"
	RedPrompt       = "Choose the red team champions"
	ActionHeader    = "Use the Neural Network to predict the winner"
	ActionButton    = "Calculate winner"
	WinnerLead      = "The predicted winner is: "
	ConfidenceLead  = "The confidence of this prediction is: "
	DuplicateNotice = "Some champions are picked more than once: "
)

// SlotView is one chooser and its icon.
type SlotView struct {
	Key      roster.SlotKey
	Label    string
	Champion string
	Icon     icons.Icon
}

// RowView pairs the blue and red slot of a role.
type RowView struct {
	Role roster.Role
	Blue SlotView
	Red  SlotView
}

// LobbyView is everything the page needs for one render.
type LobbyView struct {
	Options    []string
	Rows       []RowView
	Duplicates []string
	Prediction *prediction.Result
}

// BuildLobby is a pure function of the catalog, the roster state and the
// last prediction. Calling it twice on the same input yields the same view.
func BuildLobby(cat catalog.Catalog, r *roster.Roster, res *icons.Resolver, pred *prediction.Result) LobbyView {
	v := LobbyView{
		Options:    cat.IDs(),
		Rows:       make([]RowView, len(roster.Roles)),
		Duplicates: r.Duplicates(),
	}
	if pred != nil {
		p := *pred
		v.Prediction = &p
	}

	for i, role := range roster.Roles {
		v.Rows[i].Role = role
	}
	for _, s := range types.NewSlotStates(r, res) {
		i := roleIndex(s.Role)
		if i < 0 {
			continue
		}
		sv := SlotView{
			Key:      s.Key,
			Label:    s.Team.Label() + " Champion " + strconv.Itoa(i+1),
			Champion: s.Champion,
			Icon:     s.Icon,
		}
		if s.Team == roster.Blue {
			v.Rows[i].Blue = sv
		} else {
			v.Rows[i].Red = sv
		}
	}
	return v
}

func roleIndex(role roster.Role) int {
	for i, r := range roster.Roles {
		if r == role {
			return i
		}
	}
	return -1
}
