// Package delivery defines the contract every transport front-end fulfils.
package delivery

import "context"

// Delivery is a serving surface (e.g., the HTTP server) managed by the
// application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
