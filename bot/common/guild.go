package common

import (
	"context"

	"cardbot/application"
)

// Runner executes ledger operations inside guild-scoped units of work
type Runner struct {
	factory application.UnitOfWorkFactory
	deps    application.ServiceDeps
}

// NewRunner creates a runner over factory
func NewRunner(factory application.UnitOfWorkFactory, deps application.ServiceDeps) *Runner {
	return &Runner{factory: factory, deps: deps}
}

// Run calls fn with services bound to a fresh unit of work for guildID.
// The unit of work commits only if fn succeeds.
func (r *Runner) Run(ctx context.Context, guildID int64, fn func(*application.Services) error) error {
	return application.WithServices(ctx, r.factory, guildID, r.deps, fn)
}

// Deps returns the process-wide service collaborators
func (r *Runner) Deps() application.ServiceDeps {
	return r.deps
}
