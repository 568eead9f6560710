// Package delivery defines the contract implemented by every transport server.
package delivery

import "context"

// Delivery is a long-running transport (e.g. an HTTP server) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks serving requests until the server is shut down.
	Serve(ctx context.Context) error
}
