package cost

import (
	"context"

	"go.uber.org/zap"
)

// RunCharger is the platform charging surface.
type RunCharger interface {
	ChargeRun(ctx context.Context, runID, eventName string, count int) error
}

// Charger reports billable events against a platform run. A Charger with an
// empty run ID is a no-op, which is the normal case when running locally.
type Charger struct {
	client RunCharger
	runID  string
}

// NewCharger creates a Charger for the given platform run.
func NewCharger(client RunCharger, runID string) *Charger {
	return &Charger{client: client, runID: runID}
}

// Charge reports count occurrences of an event. Charging is best effort: a
// failed charge is logged and the run continues.
func (c *Charger) Charge(ctx context.Context, eventName string, count int) {
	if c == nil || c.client == nil || c.runID == "" || count <= 0 {
		return
	}
	if err := c.client.ChargeRun(ctx, c.runID, eventName, count); err != nil {
		zap.L().Warn("cost: charge failed",
			zap.String("event", eventName),
			zap.Int("count", count),
			zap.Error(err),
		)
	}
}
