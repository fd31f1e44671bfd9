// Package diag holds the setup diagnostic exposed next to the kernels.
// It shares no data with the kernel package.
package diag

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNegativeCount is returned when a count passed to Setup is negative.
var ErrNegativeCount = errors.New("diag: negative count")

// Report is the record produced by Setup.
type Report struct {
	States  int `json:"states"`
	Actions int `json:"actions"`
}

// String implements fmt.Stringer.
func (r Report) String() string {
	return fmt.Sprintf("States: %d, Actions: %d", r.States, r.Actions)
}

// Setup records the number of states and actions as one structured log line.
func Setup(logger *slog.Logger, states, actions int) (Report, error) {
	if states < 0 || actions < 0 {
		return Report{}, fmt.Errorf("%w: states=%d actions=%d", ErrNegativeCount, states, actions)
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := Report{States: states, Actions: actions}
	logger.Info("setup", "states", states, "actions", actions)
	return r, nil
}
