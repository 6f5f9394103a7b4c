// Package scene provides the root of a scene graph together with the per-scene render state:
// the active camera, an optional override material and the background color.
//
// Scenes are owned by the render thread and are not safe for concurrent use.
package scene

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/game_object"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
)

// Scene is the root node of a renderable tree. Objects added through Add are attached
// directly under the root and kept in a registry for lookup by ID; anything attached below
// them through the node API is rendered but not registered.
type Scene interface {
	node.Object

	// Active returns whether this scene is currently active for rendering.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	//
	// Parameters:
	//   - active: true to render the scene
	SetActive(active bool)

	// Camera returns the scene's camera, or nil.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// SetCamera replaces the scene's camera. The camera does not have to be part of the tree.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// OverrideMaterial returns the material that replaces every object's material, or nil.
	//
	// Returns:
	//   - material.Material: the override material or nil
	OverrideMaterial() material.Material

	// SetOverrideMaterial sets or clears the override material.
	//
	// Parameters:
	//   - m: the override material, nil to draw each object with its own material
	SetOverrideMaterial(m material.Material)

	// Background returns the clear color (RGBA).
	//
	// Returns:
	//   - common.Vec4: the background color
	Background() common.Vec4

	// SetBackground sets the clear color (RGBA).
	//
	// Parameters:
	//   - color: the background color
	SetBackground(color common.Vec4)

	// Add attaches obj under the scene root and registers it by ID. Adding an object that is
	// already registered is a no-op.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - identity.ID: the object's ID
	Add(obj game_object.GameObject) identity.ID

	// Get retrieves a registered object by its ID.
	// Returns nil if not found or already disposed.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id identity.ID) game_object.GameObject

	// Remove detaches a registered object from the scene without disposing it.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the removed object or nil
	Remove(id identity.ID) game_object.GameObject

	// Count returns the number of registered objects.
	//
	// Returns:
	//   - int: the registry size
	Count() int

	// Objects returns the registered objects ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Clear detaches and disposes every registered object.
	Clear()

	// Update refreshes the world matrices of the whole tree, and of the camera when it is not
	// part of any tree.
	Update()

	// Dispose destroys the whole tree and empties the registry.
	Dispose()
}

type scene struct {
	*node.Node

	active     bool
	cam        camera.Camera
	override   material.Material
	background common.Vec4

	registry map[identity.ID]game_object.GameObject

	nodeOptions []node.NodeBuilderOption
	objects     []game_object.GameObject
}

var _ Scene = &scene{}

// NewScene creates an active, empty scene with a black background.
//
// Parameters:
//   - ctx: the render context issuing the root node ID
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(ctx render_context.RenderContext, options ...SceneBuilderOption) Scene {
	s := &scene{
		active:     true,
		background: common.Vec4{0, 0, 0, 1},
		registry:   make(map[identity.ID]game_object.GameObject),
	}
	for _, option := range options {
		option(s)
	}
	s.Node = node.New(ctx, append([]node.NodeBuilderOption{node.WithKind(node.KindScene)}, s.nodeOptions...)...)
	for _, obj := range s.objects {
		s.Add(obj)
	}
	s.nodeOptions, s.objects = nil, nil
	return s
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.cam = cam
}

func (s *scene) OverrideMaterial() material.Material {
	return s.override
}

func (s *scene) SetOverrideMaterial(m material.Material) {
	s.override = m
}

func (s *scene) Background() common.Vec4 {
	return s.background
}

func (s *scene) SetBackground(color common.Vec4) {
	s.background = color
}

func (s *scene) Add(obj game_object.GameObject) identity.ID {
	if obj == nil {
		panic(fmt.Sprintf("scene %d: cannot add a nil object", s.ID()))
	}
	id := obj.ID()
	if _, ok := s.registry[id]; ok {
		return id
	}
	s.AddChild(obj)
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id identity.ID) game_object.GameObject {
	obj, ok := s.registry[id]
	if !ok {
		return nil
	}
	if obj.Base().Disposed() {
		delete(s.registry, id)
		return nil
	}
	return obj
}

func (s *scene) Remove(id identity.ID) game_object.GameObject {
	obj, ok := s.registry[id]
	if !ok {
		return nil
	}
	delete(s.registry, id)
	s.RemoveChild(obj)
	return obj
}

func (s *scene) Count() int {
	return len(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	ids := make([]identity.ID, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]game_object.GameObject, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Clear() {
	for id, obj := range s.registry {
		delete(s.registry, id)
		obj.Dispose()
	}
}

func (s *scene) Update() {
	s.UpdateWorldMatrix(false, true)
	if s.cam != nil && s.cam.Base().Parent() == nil {
		s.cam.Base().UpdateWorldMatrix(false, true)
	}
}

func (s *scene) Dispose() {
	clear(s.registry)
	s.Node.Dispose()
}
