package health

import "context"

// HealthPinger is implemented by adapters that can probe their own backing
// resource directly (for the relational stores, a driver ping). HealthPing
// returns nil when the component is healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
