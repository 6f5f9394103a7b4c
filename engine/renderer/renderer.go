// Package renderer drives one frame at a time: it refreshes world matrices, culls and collects
// the visible objects into the render list, keeps their GPU buffers and vertex layouts current
// and submits a draw per item.
//
// A Renderer belongs to the render thread and is not safe for concurrent use.
package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/game_object"
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/buffer_cache"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/geometry_updater"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/render_list"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/vertex_layout"
	"github.com/Carmen-Shannon/oxy-sg/engine/scene"
)

// ErrNoCamera is returned by Render when neither the call nor the scene supplies a camera.
var ErrNoCamera = errors.New("renderer: no camera")

// Info holds the statistics of the last rendered frame. Frame, Calls, Triangles, Lines,
// Points and Culled are reset every frame; the memory counts reflect the caches after it.
type Info struct {
	Frame     uint64
	Calls     int
	Triangles int
	Lines     int
	Points    int
	Culled    int

	Geometries    int
	Buffers       int
	Layouts       int
	ResidentBytes int
}

func (i *Info) resetFrame(frame uint64) {
	i.Frame = frame
	i.Calls, i.Triangles, i.Lines, i.Points, i.Culled = 0, 0, 0, 0, 0
}

func (i *Info) count(mode gpu.DrawMode, n int) {
	i.Calls++
	switch mode {
	case gpu.DrawLines:
		i.Lines += n / 2
	case gpu.DrawPoints:
		i.Points += n
	default:
		i.Triangles += n / 3
	}
}

type renderer struct {
	ctx    render_context.RenderContext
	device gpu.Device

	buffers buffer_cache.BufferCache
	layouts vertex_layout.VertexLayoutCache
	updater geometry_updater.GeometryUpdater
	list    render_list.RenderList

	slots           vertex_layout.Slots
	syncer          geometry_updater.Syncer
	opaqueSort      render_list.Compare
	transparentSort render_list.Compare
	culling         bool

	frame uint64
	info  Info
	subs  event.Group
}

// Renderer defines the interface for the frame driver.
//
// Each Render call runs the full frame: increment the frame counter, update world matrices,
// begin the render list, traverse, sort, draw and end the list.
type Renderer interface {
	// Render draws one frame of s as seen from cam.
	//
	// Parameters:
	//   - s: the scene to draw; an inactive scene is skipped without advancing the frame
	//   - cam: the camera, or nil to use the scene's camera
	//
	// Returns:
	//   - error: ErrNoCamera, or the first buffer, layout or draw error, wrapped
	Render(s scene.Scene, cam camera.Camera) error

	// Frame returns the number of frames rendered.
	//
	// Returns:
	//   - uint64: the frame counter
	Frame() uint64

	// Info returns the statistics of the last frame.
	//
	// Returns:
	//   - Info: the frame statistics
	Info() Info

	// Context returns the render context the renderer and its caches were created with.
	//
	// Returns:
	//   - render_context.RenderContext: the context
	Context() render_context.RenderContext

	// Device returns the device the renderer draws with.
	//
	// Returns:
	//   - gpu.Device: the device
	Device() gpu.Device

	// Buffers returns the attribute buffer cache.
	//
	// Returns:
	//   - buffer_cache.BufferCache: the buffer cache
	Buffers() buffer_cache.BufferCache

	// Layouts returns the vertex-layout cache.
	//
	// Returns:
	//   - vertex_layout.VertexLayoutCache: the layout cache
	Layouts() vertex_layout.VertexLayoutCache

	// RenderList returns the render list reused across frames.
	//
	// Returns:
	//   - render_list.RenderList: the render list
	RenderList() render_list.RenderList

	// SetSorting replaces the comparators used for the opaque and transparent buckets. A nil
	// comparator selects the default order.
	//
	// Parameters:
	//   - opaque: the opaque comparator, or nil
	//   - transparent: the transparent comparator, or nil
	SetSorting(opaque, transparent render_list.Compare)

	// SetFrustumCulling enables or disables frustum culling for every object.
	//
	// Parameters:
	//   - enabled: false to draw objects regardless of the camera frustum
	SetFrustumCulling(enabled bool)

	// Release frees every cached GPU resource and stops listening for disposal events.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer and its caches on top of device.
//
// Parameters:
//   - ctx: the render context shared with the scene's resources
//   - device: the device to draw with
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(ctx render_context.RenderContext, device gpu.Device, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		ctx:     ctx,
		device:  device,
		slots:   vertex_layout.DefaultSlots(),
		culling: true,
	}
	for _, option := range options {
		option(r)
	}

	r.buffers = buffer_cache.NewBufferCache(ctx, device)
	r.layouts = vertex_layout.NewVertexLayoutCache(ctx, device, r.buffers, vertex_layout.WithSlots(r.slots))
	if r.syncer == nil {
		r.syncer = geometry_updater.BufferSyncer{Buffers: r.buffers}
	}
	r.updater = geometry_updater.NewGeometryUpdater(ctx, r.syncer)
	if r.list == nil {
		r.list = render_list.NewRenderList()
	}

	r.subs = append(r.subs, ctx.Events().Subscribe(event.MaterialDisposed, r, "MaterialDisposed", func(e event.Event) {
		if id, ok := e.Payload.(identity.ID); ok {
			ctx.Logger().Debugf("renderer: material %d disposed", id)
		}
	}))
	return r
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if !s.Active() {
		return nil
	}
	if cam == nil {
		cam = s.Camera()
	}
	if cam == nil {
		return ErrNoCamera
	}

	r.frame++
	r.info.resetFrame(r.frame)

	s.Base().UpdateWorldMatrix(false, true)
	if cam.Base().Parent() == nil {
		cam.Base().UpdateWorldMatrix(true, false)
	}
	view := cam.ViewMatrix()
	frustum := common.ExtractFrustumFromMatrix(cam.ProjectionMatrix().Mul(view))

	if framer, ok := r.device.(gpu.Framer); ok {
		framer.SetClearColor(s.Background())
		if err := framer.BeginFrame(); err != nil {
			return fmt.Errorf("render frame %d: %w", r.frame, err)
		}
		defer framer.EndFrame()
	}

	r.list.Begin()
	defer r.list.End()
	r.layouts.Reset()

	var projectErr error
	s.Base().TraverseVisible(func(o node.Object) {
		if projectErr != nil {
			return
		}
		projectErr = r.project(o, s, view, frustum)
	})
	if projectErr != nil {
		r.updateMemoryStats()
		return fmt.Errorf("render frame %d: %w", r.frame, projectErr)
	}

	r.list.Sort(r.opaqueSort, r.transparentSort)
	err := r.drawItems(r.list.Opaques())
	if err == nil {
		err = r.drawItems(r.list.Transparents())
	}
	r.updateMemoryStats()
	if err != nil {
		return fmt.Errorf("render frame %d: %w", r.frame, err)
	}
	return nil
}

// project pushes o onto the render list when it is an enabled, visible game object with a
// geometry that survives frustum culling.
func (r *renderer) project(o node.Object, s scene.Scene, view common.Mat4, frustum common.Frustum) error {
	obj, ok := o.(game_object.GameObject)
	if !ok || !obj.Enabled() {
		return nil
	}
	geo := obj.Geometry()
	if geo == nil || geo.Disposed() {
		return nil
	}
	n := obj.Base()

	if r.culling && obj.FrustumCulled() {
		if geo.BoundingSphere() == nil && geo.Has(geometry.AttributePosition) {
			geo.ComputeBoundingSphere()
		}
		if sphere := geo.BoundingSphere(); sphere != nil && !sphere.IsEmpty() {
			if !frustum.IntersectsSphere(sphere.ApplyMatrix(n.WorldMatrix())) {
				r.info.Culled++
				return nil
			}
		}
	}

	if _, err := r.updater.Touch(geo, r.frame); err != nil {
		return fmt.Errorf("object %d geometry %d: %w", n.ID(), geo.ID(), err)
	}

	mat := obj.Material()
	if override := s.OverrideMaterial(); override != nil {
		mat = override
	}
	n.UpdateModelViewMatrix(view)
	r.list.Push(obj, geo, mat, obj.GroupOrder(), camera.DepthInView(view, n.WorldPosition()))
	return nil
}

func (r *renderer) drawItems(items []*render_list.RenderItem) error {
	drawer, canDraw := r.device.(gpu.Drawer)
	for _, item := range items {
		geo := item.Geometry
		index := geo.Index()
		if err := r.layouts.Setup(geo, index); err != nil {
			return fmt.Errorf("object %d: %w", item.ID, err)
		}

		mode := gpu.DrawTriangles
		if obj, ok := item.Object.(game_object.GameObject); ok {
			mode = obj.DrawMode()
		}
		count := geo.DrawCount()
		if count == 0 {
			continue
		}
		if canDraw {
			if err := drawer.Draw(mode, count, index != nil); err != nil {
				return fmt.Errorf("object %d draw: %w", item.ID, err)
			}
		}
		r.info.count(mode, count)
	}
	return nil
}

func (r *renderer) updateMemoryStats() {
	r.info.Geometries = r.updater.Tracked()
	r.info.Buffers = r.buffers.Len()
	r.info.Layouts = r.layouts.Len()
	r.info.ResidentBytes = r.buffers.ResidentBytes()
}

func (r *renderer) Frame() uint64 {
	return r.frame
}

func (r *renderer) Info() Info {
	return r.info
}

func (r *renderer) Context() render_context.RenderContext {
	return r.ctx
}

func (r *renderer) Device() gpu.Device {
	return r.device
}

func (r *renderer) Buffers() buffer_cache.BufferCache {
	return r.buffers
}

func (r *renderer) Layouts() vertex_layout.VertexLayoutCache {
	return r.layouts
}

func (r *renderer) RenderList() render_list.RenderList {
	return r.list
}

func (r *renderer) SetSorting(opaque, transparent render_list.Compare) {
	r.opaqueSort = opaque
	r.transparentSort = transparent
}

func (r *renderer) SetFrustumCulling(enabled bool) {
	r.culling = enabled
}

func (r *renderer) Release() {
	r.subs.Release()
	r.subs = nil
	r.updater.Release()
	r.layouts.Release()
	r.buffers.Release()
}
