package ports

import "context"

// Pinger reports store reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}
