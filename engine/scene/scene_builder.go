package scene

import (
	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/camera"
	"github.com/Carmen-Shannon/oxy-sg/engine/game_object"
	"github.com/Carmen-Shannon/oxy-sg/engine/material"
	"github.com/Carmen-Shannon/oxy-sg/engine/node"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the name of the scene's root node.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.nodeOptions = append(s.nodeOptions, node.WithName(name))
	}
}

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera sets the scene's camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithOverrideMaterial draws every object of the scene with m.
//
// Parameters:
//   - m: the override material
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOverrideMaterial(m material.Material) SceneBuilderOption {
	return func(s *scene) {
		s.override = m
	}
}

// WithBackground sets the clear color.
//
// Parameters:
//   - color: RGBA background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(color common.Vec4) SceneBuilderOption {
	return func(s *scene) {
		s.background = color
	}
}

// WithObjects adds initial objects to the scene once the root node exists.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.objects = append(s.objects, objects...)
	}
}
