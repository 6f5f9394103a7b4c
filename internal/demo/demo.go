// Package demo builds the spinning grid scene used by the oxysg command and the examples, and
// formats renderer statistics as tables.
package demo

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/config"
	"github.com/Carmen-Shannon/oxy-sg/engine/game_object"
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/primitives"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/Carmen-Shannon/oxy-sg/engine/scene"
	"github.com/chewxy/math32"
)

const (
	boxSize        = 1.0
	sphereRadius   = 0.6
	sphereSegments = 16
	sphereRings    = 12
)

// Demo is a grid of alternating boxes and spheres centered on the origin.
type Demo struct {
	Scene   scene.Scene
	Camera  camera.Camera
	Orbit   camera.OrbitController
	Objects []game_object.GameObject

	cfg config.SceneConfig
}

// Build creates the grid described by cfg. With shared geometry every box uses one geometry and
// every sphere another; otherwise each object gets its own, generated in parallel.
//
// Parameters:
//   - ctx: the render context
//   - cfg: the scene section of the configuration
//   - aspect: the initial camera aspect ratio
//
// Returns:
//   - *Demo: the populated scene
//   - error: an error if cfg describes an empty grid
func Build(ctx render_context.RenderContext, cfg config.SceneConfig, aspect float32) (*Demo, error) {
	if cfg.Grid <= 0 {
		return nil, fmt.Errorf("demo: grid size must be positive, got %d", cfg.Grid)
	}
	count := cfg.Grid * cfg.Grid

	extent := float32(cfg.Grid-1) * cfg.Spacing
	radius := max(extent*2, 5)
	cam := camera.NewCamera(ctx,
		camera.WithPerspective(math32.Pi/3, 0.1, radius*4),
		camera.WithAspect(aspect),
		camera.WithNodeOptions(node.WithName("demo camera")),
	)
	orbit := camera.NewOrbitController(
		camera.WithRadius(radius),
		camera.WithRadiusLimits(1, radius*3),
		camera.WithAzimuth(0.3),
		camera.WithElevation(0.6),
		camera.WithZoomSpeed(max(cfg.Spacing, 1)),
	)
	orbit.Apply(cam)

	d := &Demo{
		Scene:   scene.NewScene(ctx, scene.WithName("grid"), scene.WithCamera(cam), scene.WithBackground(common.Vec4{0.08, 0.08, 0.1, 1})),
		Camera:  cam,
		Orbit:   orbit,
		Objects: make([]game_object.GameObject, 0, count),
		cfg:     cfg,
	}

	geometries := d.geometries(ctx, count)
	opaque := material.NewMaterial(ctx, material.WithName("opaque"))
	glass := material.NewMaterial(ctx, material.WithName("glass"), material.WithTransparent(0.4))

	offset := extent / 2
	for i := range count {
		row, col := i/cfg.Grid, i%cfg.Grid
		m := opaque
		if cfg.TransparentEvery > 0 && (i+1)%cfg.TransparentEvery == 0 {
			m = glass
		}
		obj := game_object.NewGameObject(ctx,
			game_object.WithGeometry(geometries[i]),
			game_object.WithMaterial(m),
			game_object.WithNodeOptions(
				node.WithName(fmt.Sprintf("cell %d,%d", row, col)),
				node.WithPosition(common.Vec3{float32(col)*cfg.Spacing - offset, 0, float32(row)*cfg.Spacing - offset}),
			),
		)
		d.Scene.Add(obj)
		d.Objects = append(d.Objects, obj)
	}
	return d, nil
}

// geometries returns one geometry per cell, boxes on even cells and spheres on odd ones.
func (d *Demo) geometries(ctx render_context.RenderContext, count int) []*geometry.Geometry {
	out := make([]*geometry.Geometry, count)
	if d.cfg.SharedGeometry {
		data := primitives.GenerateBatch([]primitives.Job{
			primitives.BoxJob(boxSize, boxSize, boxSize),
			primitives.SphereJob(sphereRadius, sphereSegments, sphereRings),
		}, d.cfg.Workers)
		box := primitives.ToGeometry(ctx, data[0], geometry.WithName("box"))
		sphere := primitives.ToGeometry(ctx, data[1], geometry.WithName("sphere"))
		for i := range out {
			out[i] = box
			if i%2 == 1 {
				out[i] = sphere
			}
		}
		return out
	}

	jobs := make([]primitives.Job, count)
	for i := range jobs {
		jobs[i] = primitives.BoxJob(boxSize, boxSize, boxSize)
		if i%2 == 1 {
			jobs[i] = primitives.SphereJob(sphereRadius, sphereSegments, sphereRings)
		}
	}
	for i, data := range primitives.GenerateBatch(jobs, d.cfg.Workers) {
		out[i] = primitives.ToGeometry(ctx, data, geometry.WithName(fmt.Sprintf("cell %d", i)))
	}
	return out
}

// Spin rotates every object around its Y axis by the configured speed, scaled so that a 60 Hz
// frame turns by exactly SpinSpeed. A zero dt counts as one such frame.
//
// Parameters:
//   - dt: seconds since the previous frame
func (d *Demo) Spin(dt float32) {
	if dt <= 0 {
		dt = 1.0 / 60
	}
	angle := d.cfg.SpinSpeed * dt * 60
	for i, obj := range d.Objects {
		if i%2 == 0 {
			obj.Base().RotateY(angle)
		} else {
			obj.Base().RotateX(angle)
		}
	}
}

// Dispose releases every object, the geometries and attributes they use and the scene.
func (d *Demo) Dispose() {
	for _, obj := range d.Objects {
		geo := obj.Geometry()
		if geo == nil || geo.Disposed() {
			continue
		}
		for _, src := range geo.Attributes() {
			src.Dispose()
		}
		if index := geo.Index(); index != nil {
			index.Dispose()
		}
		geo.Dispose()
	}
	d.Scene.Clear()
	d.Scene.Dispose()
	d.Objects = nil
}
