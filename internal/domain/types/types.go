// Package types contains read shapes shared by the HTTP layers.
package types

import (
	"github.com/okian/lobby/internal/domain/icons"
	"github.com/okian/lobby/internal/domain/model"
	"github.com/okian/lobby/internal/domain/prediction"
	"github.com/okian/lobby/internal/domain/roster"
)

// SlotState is one slot with its resolved icon.
type SlotState struct {
	Key      roster.SlotKey `json:"key"`
	Team     roster.Team    `json:"team"`
	Role     roster.Role    `json:"role"`
	Champion string         `json:"champion"`
	Icon     icons.Icon     `json:"icon"`
}

// SessionState is the JSON view of a lobby session.
type SessionState struct {
	ID         string             `json:"id"`
	Slots      []SlotState        `json:"slots"`
	Duplicates []string           `json:"duplicates,omitempty"`
	Prediction *prediction.Result `json:"prediction,omitempty"`
}

// NewSlotStates resolves the icon of every slot in r, in display order.
func NewSlotStates(r *roster.Roster, res *icons.Resolver) []SlotState {
	slots := r.Slots()
	out := make([]SlotState, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotState{
			Key:      s.Key(),
			Team:     s.Team,
			Role:     s.Role,
			Champion: s.Champion,
			Icon:     res.Resolve(s.Champion),
		})
	}
	return out
}

// NewSessionState builds the read shape of sess.
func NewSessionState(sess *model.Session, res *icons.Resolver) SessionState {
	st := SessionState{
		ID:         sess.ID,
		Slots:      NewSlotStates(sess.Roster, res),
		Duplicates: sess.Roster.Duplicates(),
	}
	if sess.Prediction != nil {
		p := *sess.Prediction
		st.Prediction = &p
	}
	return st
}
