// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/lobby/internal/domain/prediction"
	"github.com/okian/lobby/internal/domain/roster"
)

// Session is one browser's lobby: its roster and the last verdict shown.
type Session struct {
	ID         string
	Roster     *roster.Roster
	Prediction *prediction.Result // nil until the button is pressed
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clone returns a deep copy safe to hand to renderers.
func (s *Session) Clone() *Session {
	c := *s
	if s.Roster != nil {
		c.Roster = s.Roster.Clone()
	}
	if s.Prediction != nil {
		p := *s.Prediction
		c.Prediction = &p
	}
	return &c
}
