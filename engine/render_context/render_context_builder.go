package render_context

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
)

// RenderContextBuilderOption is a functional option for configuring a RenderContext during construction.
type RenderContextBuilderOption func(*renderContext)

// WithIDs sets the ID generator.
//
// Parameters:
//   - ids: the generator to share
//
// Returns:
//   - RenderContextBuilderOption: functional option to set the generator
func WithIDs(ids identity.Generator) RenderContextBuilderOption {
	return func(c *renderContext) {
		c.ids = ids
	}
}

// WithEvents sets the event bus.
//
// Parameters:
//   - bus: the bus to share
//
// Returns:
//   - RenderContextBuilderOption: functional option to set the bus
func WithEvents(bus event.Bus) RenderContextBuilderOption {
	return func(c *renderContext) {
		c.events = bus
	}
}

// WithLogger sets the context logger.
//
// Parameters:
//   - l: the logger subsystems should write to
//
// Returns:
//   - RenderContextBuilderOption: functional option to set the logger
func WithLogger(l log.Logger) RenderContextBuilderOption {
	return func(c *renderContext) {
		c.logger = l
	}
}
