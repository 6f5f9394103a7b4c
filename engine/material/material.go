// Package material describes how a renderable's surface is drawn: its kind, blending and depth
// state. Transparency decides which render-list bucket an object is sorted into.
package material

import (
	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
)

// Kind identifies the material variant.
type Kind uint8

const (
	KindBasic Kind = iota
	KindLine
	KindPoint
	KindDepth
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPoint:
		return "point"
	case KindDepth:
		return "depth"
	}
	return "basic"
}

// Side selects which faces are rasterized.
type Side uint8

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// material is the implementation of the Material interface.
type material struct {
	ctx         render_context.RenderContext
	id          identity.ID
	name        string
	kind        Kind
	baseColor   common.Vec4
	opacity     float32
	transparent bool
	depthTest   bool
	depthWrite  bool
	side        Side
	version     uint64
	disposed    bool
}

// Material defines the surface state of a renderable.
//
// The renderer only reads ID and Transparent. The rest is carried for backends; every setter
// bumps Version so a backend can tell its cached pipeline state is stale.
type Material interface {
	// ID retrieves the material's unique identifier.
	//
	// Returns:
	//   - identity.ID: the material ID
	ID() identity.ID

	// Name retrieves the material name.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Kind retrieves the material variant.
	//
	// Returns:
	//   - Kind: basic, line, point or depth
	Kind() Kind

	// Transparent reports whether objects using this material are drawn in the blended pass,
	// back to front.
	//
	// Returns:
	//   - bool: true for the transparent bucket
	Transparent() bool

	// SetTransparent moves the material between the opaque and transparent buckets.
	//
	// Parameters:
	//   - transparent: true for blended drawing
	SetTransparent(transparent bool)

	// BaseColor retrieves the RGBA color of the material.
	//
	// Returns:
	//   - common.Vec4: the base color
	BaseColor() common.Vec4

	// SetBaseColor sets the RGBA color of the material.
	//
	// Parameters:
	//   - color: the new base color
	SetBaseColor(color common.Vec4)

	// Opacity retrieves the alpha multiplier applied when blending.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// SetOpacity sets the alpha multiplier, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float32)

	// DepthTest reports whether fragments are depth tested.
	//
	// Returns:
	//   - bool: true when depth testing is enabled
	DepthTest() bool

	// DepthWrite reports whether fragments write depth.
	//
	// Returns:
	//   - bool: true when depth writes are enabled
	DepthWrite() bool

	// Side retrieves which faces are drawn.
	//
	// Returns:
	//   - Side: front, back or double
	Side() Side

	// Version retrieves a counter that increases on every change.
	//
	// Returns:
	//   - uint64: the version
	Version() uint64

	// NeedsUpdate bumps the version so backends rebuild their state.
	NeedsUpdate()

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true after Dispose
	Disposed() bool

	// Dispose publishes a material-disposed event with the material ID. Later calls are no-ops.
	Dispose()
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults: basic, opaque white, opacity 1, depth test and write on, front faces.
//
// Parameters:
//   - ctx: the render context issuing the ID and carrying the event bus
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(ctx render_context.RenderContext, options ...MaterialBuilderOption) Material {
	m := &material{
		ctx:        ctx,
		id:         ctx.NextID(),
		baseColor:  common.Vec4{1, 1, 1, 1},
		opacity:    1,
		depthTest:  true,
		depthWrite: true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) ID() identity.ID {
	return m.id
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Kind() Kind {
	return m.kind
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) SetTransparent(transparent bool) {
	m.transparent = transparent
	m.version++
}

func (m *material) BaseColor() common.Vec4 {
	return m.baseColor
}

func (m *material) SetBaseColor(color common.Vec4) {
	m.baseColor = color
	m.version++
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) SetOpacity(opacity float32) {
	m.opacity = min(max(opacity, 0), 1)
	m.version++
}

func (m *material) DepthTest() bool {
	return m.depthTest
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) Version() uint64 {
	return m.version
}

func (m *material) NeedsUpdate() {
	m.version++
}

func (m *material) Disposed() bool {
	return m.disposed
}

func (m *material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.ctx.Events().Publish(event.Event{
		Topic:   event.MaterialDisposed,
		Target:  m,
		Payload: m.id,
	})
}
