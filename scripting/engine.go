// Package scripting evaluates user-supplied expressions, used by the batch
// stamper to compute per-record field text (e.g. building a stamp from
// several record columns).
package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript).
type Engine interface {
	// Execute evaluates a script and returns its result.
	Execute(ctx context.Context, script string) (interface{}, error)

	// Set binds a global variable visible to subsequent scripts.
	Set(name string, value interface{}) error
}
