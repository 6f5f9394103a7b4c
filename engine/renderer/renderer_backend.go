package renderer

import (
	"fmt"
	"strings"
)

// RendererBackendType identifies the device implementation a Renderer drives.
type RendererBackendType int

const (
	// BackendTypeMemory selects the emulated in-memory device, used headless and in tests.
	BackendTypeMemory RendererBackendType = iota

	// BackendTypeWGPU selects the WebGPU device.
	BackendTypeWGPU
)

func (b RendererBackendType) String() string {
	switch b {
	case BackendTypeMemory:
		return "memory"
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend converts a backend name to a RendererBackendType. Matching is case-insensitive.
//
// Parameters:
//   - name: "memory" or "wgpu"
//
// Returns:
//   - RendererBackendType: the backend
//   - error: an error for unknown names
func ParseBackend(name string) (RendererBackendType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "memory", "":
		return BackendTypeMemory, nil
	case "wgpu", "webgpu":
		return BackendTypeWGPU, nil
	default:
		return 0, fmt.Errorf("renderer: unknown backend %q", name)
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)
