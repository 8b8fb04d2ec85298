// Package timeout defines centralized timeout constants for the office
// availability pipeline.
package timeout

import "time"

const (
	// EmbeddingTimeout bounds one embedding request, single or batch.
	EmbeddingTimeout = 30 * time.Second

	// NarrationTimeout bounds one chat completion.
	NarrationTimeout = 60 * time.Second

	// TimeLookupTimeout bounds one current-time lookup.
	TimeLookupTimeout = 5 * time.Second

	// ShutdownTimeout is how long in-flight requests get to drain.
	ShutdownTimeout = 10 * time.Second
)
