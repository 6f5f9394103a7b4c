// Package render_context holds the explicit process-wide context handed to every subsystem at
// construction: the ID generator, the event bus and the logger.
//
// The engine is single-threaded and frame-loop driven. The context, its bus and every cache
// built on it are not internally synchronized and must only be touched from the render thread.
// The one exception is the ID generator, which is atomic.
package render_context

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
)

type renderContext struct {
	ids    identity.Generator
	events event.Bus
	logger log.Logger
}

// RenderContext is the shared coordination point of the engine.
type RenderContext interface {
	// IDs returns the generator used for every node, attribute, geometry and material ID.
	//
	// Returns:
	//   - identity.Generator: the shared generator
	IDs() identity.Generator

	// NextID is shorthand for IDs().Next().
	//
	// Returns:
	//   - identity.ID: a fresh identifier
	NextID() identity.ID

	// Events returns the bus that carries disposal notifications.
	//
	// Returns:
	//   - event.Bus: the shared bus
	Events() event.Bus

	// Logger returns the context logger.
	//
	// Returns:
	//   - log.Logger: the shared logger
	Logger() log.Logger
}

var _ RenderContext = &renderContext{}

// NewRenderContext creates a RenderContext. Unset collaborators get fresh defaults:
// a new generator, a new bus and a logger named "oxy-sg".
//
// Parameters:
//   - options: functional options to configure the context
//
// Returns:
//   - RenderContext: the newly created context
func NewRenderContext(options ...RenderContextBuilderOption) RenderContext {
	c := &renderContext{}
	for _, option := range options {
		option(c)
	}
	if c.ids == nil {
		c.ids = identity.NewGenerator()
	}
	if c.events == nil {
		c.events = event.NewBus()
	}
	if c.logger == nil {
		c.logger = log.New("oxy-sg")
	}
	return c
}

func (c *renderContext) IDs() identity.Generator {
	return c.ids
}

func (c *renderContext) NextID() identity.ID {
	return c.ids.Next()
}

func (c *renderContext) Events() event.Bus {
	return c.events
}

func (c *renderContext) Logger() log.Logger {
	return c.logger
}
