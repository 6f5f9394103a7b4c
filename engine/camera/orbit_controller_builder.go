package camera

import "github.com/Carmen-Shannon/oxy-sg/common"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithTarget sets the orbit pivot.
//
// Parameters:
//   - target: world-space target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target
func WithTarget(target common.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = target
	}
}

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - OrbitControllerOption: functional option to set the radius
func WithRadius(radius float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.radius = radius
	}
}

// WithRadiusLimits bounds the orbit radius.
//
// Parameters:
//   - minRadius: closest allowed distance
//   - maxRadius: farthest allowed distance
//
// Returns:
//   - OrbitControllerOption: functional option to set the radius bounds
func WithRadiusLimits(minRadius, maxRadius float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = minRadius
		oc.maxRadius = maxRadius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - OrbitControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - OrbitControllerOption: functional option to set the elevation
func WithElevation(elevation float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.elevation = elevation
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: radius change per unit of zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}
