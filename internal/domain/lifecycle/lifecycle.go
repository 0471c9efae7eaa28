// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of deliveries and infrastructure.
const DefaultTimeout = 10 * time.Second
