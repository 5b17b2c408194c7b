package control

import (
	"context"

	"github.com/bloop16/homestate/core"
)

// StateStore is the host platform's object and state access. The host
// owns datapoint lifecycle and subscriptions; this package only reads
// configs and reads or writes single states after resolution.
type StateStore interface {
	// GetConfig returns the per-datapoint metadata.
	GetConfig(ctx context.Context, datapointID string) (core.DatapointConfig, error)

	// GetState returns the datapoint's current value and timestamp.
	GetState(ctx context.Context, datapointID string) (core.DatapointState, error)

	// SetState writes a new value to the datapoint.
	SetState(ctx context.Context, datapointID string, value any) error
}
