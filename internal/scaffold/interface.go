// Package scaffold applies a layout to a target directory and checks existing
// trees against it. Application is sequential and idempotent: directories and
// placeholder files are created once and never touched again, template files
// are rewritten on every run.
package scaffold

import (
	"context"

	"elekit/pkg/domain"
)

// Scaffolder applies a layout and checks trees against it.
type Scaffolder interface {
	// Layout returns the layout this scaffolder applies.
	Layout() domain.Layout
	// Apply materializes the layout under the configured root and returns the
	// recorded run.
	Apply(ctx context.Context) (*domain.Run, error)
	// Verify checks the tree under the configured root against the layout and
	// returns a conformance report.
	Verify(ctx context.Context) (*Report, error)
}
