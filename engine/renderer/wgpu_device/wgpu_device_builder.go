package wgpu_device

import (
	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// WGPUDeviceBuilderOption is a functional option for configuring a WGPUDevice during construction.
type WGPUDeviceBuilderOption func(*wgpuDeviceImpl)

// WithForceFallbackAdapter requests the software fallback adapter.
//
// Parameters:
//   - force: true to skip hardware adapters
//
// Returns:
//   - WGPUDeviceBuilderOption: functional option to set adapter selection
func WithForceFallbackAdapter(force bool) WGPUDeviceBuilderOption {
	return func(d *wgpuDeviceImpl) {
		d.forceFallbackAdapter = force
	}
}

// WithVSync selects Fifo presentation when true and Immediate when false. Defaults to true.
//
// Parameters:
//   - vsync: whether to wait for vertical blank
//
// Returns:
//   - WGPUDeviceBuilderOption: functional option to set the present mode
func WithVSync(vsync bool) WGPUDeviceBuilderOption {
	return func(d *wgpuDeviceImpl) {
		if vsync {
			d.presentMode = wgpu.PresentModeFifo
		} else {
			d.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithClearColor sets the color each frame starts from.
//
// Parameters:
//   - c: RGBA in [0, 1]
//
// Returns:
//   - WGPUDeviceBuilderOption: functional option to set the clear color
func WithClearColor(c common.Vec4) WGPUDeviceBuilderOption {
	return func(d *wgpuDeviceImpl) {
		d.clearColor = toColor(c)
	}
}
