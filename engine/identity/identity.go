// Package identity issues the unique identifiers used as cache keys across the engine.
package identity

import "sync/atomic"

// ID is a unique, monotonically increasing identifier. The zero value means "no id".
type ID uint64

// None is the zero ID, never issued by a Generator.
const None ID = 0

type generator struct {
	current atomic.Uint64
}

// Generator issues unique IDs.
//
// A Generator is the one piece of shared state that is safe to use from several
// goroutines, so geometry can be prepared off the render thread.
type Generator interface {
	// Next returns a fresh ID, strictly greater than every ID issued before it.
	//
	// Returns:
	//   - ID: the new identifier, never None
	Next() ID

	// Last returns the most recently issued ID, or None if Next was never called.
	//
	// Returns:
	//   - ID: the last issued identifier
	Last() ID
}

var _ Generator = &generator{}

// NewGenerator creates a Generator whose first ID is 1.
//
// Returns:
//   - Generator: the new generator
func NewGenerator() Generator {
	return &generator{}
}

func (g *generator) Next() ID {
	return ID(g.current.Add(1))
}

func (g *generator) Last() ID {
	return ID(g.current.Load())
}
