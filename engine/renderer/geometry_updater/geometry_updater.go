// Package geometry_updater syncs each geometry's attribute buffers at most once per frame, no
// matter how many objects share the geometry.
//
// The updater is owned by the render thread and is not safe for concurrent use.
package geometry_updater

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/event"
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/buffer_cache"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
)

// Syncer performs the actual per-geometry upload.
type Syncer interface {
	// Sync pushes every pending attribute change of geo to the GPU.
	//
	// Parameters:
	//   - geo: the geometry to sync
	//
	// Returns:
	//   - error: an upload error
	Sync(geo *geometry.Geometry) error
}

// SyncFunc adapts a function to Syncer.
type SyncFunc func(geo *geometry.Geometry) error

func (f SyncFunc) Sync(geo *geometry.Geometry) error {
	return f(geo)
}

// BufferSyncer is the default Syncer: it ensures every attribute through a buffer cache.
// The index is synced by the vertex-layout cache at draw time.
type BufferSyncer struct {
	Buffers buffer_cache.BufferCache
}

func (s BufferSyncer) Sync(geo *geometry.Geometry) error {
	for _, name := range geo.AttributeNames() {
		src, _ := geo.Get(name)
		if _, err := s.Buffers.Ensure(src, gpu.TargetVertex); err != nil {
			return err
		}
	}
	return nil
}

type geometryUpdater struct {
	syncer Syncer
	frames map[identity.ID]uint64
	sub    event.Subscription
}

// GeometryUpdater remembers the last frame each geometry was synced in.
type GeometryUpdater interface {
	// Touch syncs geo unless it was already synced in frame.
	//
	// Parameters:
	//   - geo: the geometry about to be drawn
	//   - frame: the current frame number
	//
	// Returns:
	//   - bool: true if a sync ran
	//   - error: the sync error; the frame is not recorded so the next Touch retries
	Touch(geo *geometry.Geometry, frame uint64) (bool, error)

	// Tracked returns the number of geometries seen and not yet disposed.
	//
	// Returns:
	//   - int: the tracked count
	Tracked() int

	// Release stops listening for geometry disposal and forgets every geometry.
	Release()
}

var _ GeometryUpdater = &geometryUpdater{}

// NewGeometryUpdater creates an updater that forgets geometries when they are disposed.
//
// Parameters:
//   - ctx: the render context carrying the bus
//   - syncer: the upload strategy, typically a BufferSyncer
//
// Returns:
//   - GeometryUpdater: the newly created updater
func NewGeometryUpdater(ctx render_context.RenderContext, syncer Syncer) GeometryUpdater {
	u := &geometryUpdater{
		syncer: syncer,
		frames: make(map[identity.ID]uint64),
	}
	u.sub = ctx.Events().Subscribe(event.GeometryDisposed, u, "Forget", func(e event.Event) {
		if id, ok := e.Payload.(identity.ID); ok {
			delete(u.frames, id)
		}
	})
	return u
}

func (u *geometryUpdater) Touch(geo *geometry.Geometry, frame uint64) (bool, error) {
	if last, ok := u.frames[geo.ID()]; ok && last == frame {
		return false, nil
	}
	if err := u.syncer.Sync(geo); err != nil {
		return false, err
	}
	u.frames[geo.ID()] = frame
	return true, nil
}

func (u *geometryUpdater) Tracked() int {
	return len(u.frames)
}

func (u *geometryUpdater) Release() {
	u.sub.Release()
	clear(u.frames)
}
