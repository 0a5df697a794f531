// Package prediction defines the contract for forecasting a lobby winner.
package prediction

import (
	"context"

	"github.com/okian/lobby/internal/domain/roster"
)

// Verdict values shown by the demo.
const (
	WinnerBlue     = "BLUE"
	ConfidenceHigh = "HIGH"
)

// Result is a forecast for a roster.
type Result struct {
	Winner     string `json:"winner"`
	Confidence string `json:"confidence"`
}

// Predictor forecasts the winner of a roster.
type Predictor interface {
	Predict(ctx context.Context, r *roster.Roster) (Result, error)
}

// ConstantPredictor ignores the roster and always answers BLUE with HIGH
// confidence. There is no model behind it.
type ConstantPredictor struct{}

// NewConstantPredictor returns the demo predictor.
func NewConstantPredictor() *ConstantPredictor {
	return &ConstantPredictor{}
}

// Predict never fails.
func (ConstantPredictor) Predict(_ context.Context, _ *roster.Roster) (Result, error) {
	return Result{Winner: WinnerBlue, Confidence: ConfidenceHigh}, nil
}
