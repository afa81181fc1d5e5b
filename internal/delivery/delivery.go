// Package delivery defines the contract shared by every inbound adapter.
package delivery

import "context"

// Delivery is a long-running inbound adapter such as an HTTP server or a job scheduler.
type Delivery interface {
	Serve(ctx context.Context) error
}
