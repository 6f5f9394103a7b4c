package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/chewxy/math32"
)

// OrbitController moves a camera on a sphere around a target point using spherical
// coordinates (radius, azimuth, elevation). Input handlers may drive it from another goroutine;
// Apply must run on the render thread because it edits the camera node.
type OrbitController interface {
	// Target returns the orbit pivot.
	//
	// Returns:
	//   - common.Vec3: world-space target
	Target() common.Vec3

	// SetTarget moves the orbit pivot.
	//
	// Parameters:
	//   - target: world-space target
	SetTarget(target common.Vec3)

	// Position returns the eye position derived from the spherical coordinates.
	//
	// Returns:
	//   - common.Vec3: world-space eye position
	Position() common.Vec3

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// Azimuth returns the horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// Orbit rotates around the target. Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dAzimuth: change of the horizontal angle in radians
	//   - dElevation: change of the vertical angle in radians
	Orbit(dAzimuth, dElevation float32)

	// Zoom moves toward the target by delta * zoom speed, clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: positive values move closer
	Zoom(delta float32)

	// Apply places cam at the eye position and points it at the target.
	//
	// Parameters:
	//   - cam: the camera to drive
	Apply(cam Camera)
}

type orbitControllerImpl struct {
	mu *sync.Mutex

	target common.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	zoomSpeed float32
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller at radius 10 with a 30 degree elevation.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:           &sync.Mutex{},
		radius:       10.0,
		elevation:    math32.Pi / 6,
		minRadius:    1.0,
		maxRadius:    1000.0,
		minElevation: -math32.Pi/2 + 0.1,
		maxElevation: math32.Pi/2 - 0.1,
		zoomSpeed:    1.0,
	}
	for _, option := range options {
		option(oc)
	}
	oc.clamp()
	return oc
}

// clamp keeps radius and elevation inside their bounds. Caller must hold the mutex.
func (oc *orbitControllerImpl) clamp() {
	oc.radius = min(max(oc.radius, oc.minRadius), oc.maxRadius)
	oc.elevation = min(max(oc.elevation, oc.minElevation), oc.maxElevation)
}

// position is the eye position. Caller must hold the mutex.
func (oc *orbitControllerImpl) position() common.Vec3 {
	sinElev, cosElev := math32.Sincos(oc.elevation)
	sinAzim, cosAzim := math32.Sincos(oc.azimuth)
	return oc.target.Add(common.Vec3{
		oc.radius * cosElev * sinAzim,
		oc.radius * sinElev,
		oc.radius * cosElev * cosAzim,
	})
}

func (oc *orbitControllerImpl) Target() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(target common.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitControllerImpl) Position() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position()
}

func (oc *orbitControllerImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControllerImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitControllerImpl) Orbit(dAzimuth, dElevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += dAzimuth
	oc.elevation += dElevation
	oc.clamp()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius -= delta * oc.zoomSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) Apply(cam Camera) {
	oc.mu.Lock()
	eye, target := oc.position(), oc.target
	oc.mu.Unlock()

	n := cam.Base()
	n.SetPosition(eye)
	n.LookAt(target, common.Vec3{0, 1, 0})
}
