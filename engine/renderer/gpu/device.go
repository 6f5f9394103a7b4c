// Package gpu is the graphics API boundary: a stateful, immediate-mode device that owns GPU
// buffers and vertex layouts behind opaque handles.
//
// Only the buffer cache and the vertex-layout cache create or bind resources through it. Two
// implementations exist: MemoryDevice, an emulated device that keeps buffer bytes in host memory
// and records every call, and the WebGPU device in package wgpu_device.
package gpu

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-sg/common"
)

var (
	// ErrUnknownBuffer is returned when a buffer handle was never created or was deleted.
	ErrUnknownBuffer = errors.New("gpu: unknown buffer handle")
	// ErrUnknownLayout is returned when a layout handle was never created or was deleted.
	ErrUnknownLayout = errors.New("gpu: unknown vertex layout handle")
	// ErrOutOfBounds is returned when a sub-range write does not fit the allocation.
	ErrOutOfBounds = errors.New("gpu: write outside buffer bounds")
	// ErrDeviceLost is returned once the device has been released.
	ErrDeviceLost = errors.New("gpu: device lost")
)

// BufferHandle identifies a GPU buffer. The zero value is never issued.
type BufferHandle uint32

// LayoutHandle identifies a vertex layout. The zero value is never issued.
type LayoutHandle uint32

// Target is the binding point a buffer is created for.
type Target uint8

const (
	// TargetVertex is a per-vertex attribute buffer.
	TargetVertex Target = iota
	// TargetIndex is an element index buffer.
	TargetIndex
)

func (t Target) String() string {
	if t == TargetIndex {
		return "index"
	}
	return "vertex"
}

// Device is the immediate-mode API the caches drive.
//
// Buffer handles are stable: a full upload that changes the size reallocates the storage but
// keeps the handle, so layouts referencing it stay valid.
type Device interface {
	// CreateBuffer allocates a buffer holding a copy of data.
	//
	// Parameters:
	//   - target: vertex or index binding point
	//   - usage: the usage hint
	//   - data: the initial contents
	//
	// Returns:
	//   - BufferHandle: the new handle
	//   - error: an error if allocation fails
	CreateBuffer(target Target, usage common.Usage, data []byte) (BufferHandle, error)

	// UploadBuffer replaces the whole contents of a buffer, reallocating when the size changed.
	//
	// Parameters:
	//   - h: the buffer to write
	//   - data: the new contents
	//
	// Returns:
	//   - error: ErrUnknownBuffer for a stale handle, or an allocation error
	UploadBuffer(h BufferHandle, data []byte) error

	// UpdateBuffer overwrites len(data) bytes starting at byteOffset.
	//
	// Parameters:
	//   - h: the buffer to write
	//   - byteOffset: first byte to overwrite
	//   - data: the replacement bytes
	//
	// Returns:
	//   - error: ErrUnknownBuffer for a stale handle, ErrOutOfBounds when the span does not fit
	UpdateBuffer(h BufferHandle, byteOffset int, data []byte) error

	// DeleteBuffer frees a buffer. Unknown handles are ignored.
	//
	// Parameters:
	//   - h: the buffer to free
	DeleteBuffer(h BufferHandle)

	// CreateVertexLayout allocates an empty vertex layout.
	//
	// Returns:
	//   - LayoutHandle: the new handle
	//   - error: an error if allocation fails
	CreateVertexLayout() (LayoutHandle, error)

	// BindVertexLayout makes h the current layout. Later BindAttribute and BindIndexBuffer calls
	// record into it.
	//
	// Parameters:
	//   - h: the layout to bind
	//
	// Returns:
	//   - error: ErrUnknownLayout for a stale handle
	BindVertexLayout(h LayoutHandle) error

	// BindAttribute attaches a vertex buffer to a shader slot of the current layout.
	//
	// Parameters:
	//   - slot: the shader input location
	//   - buf: the vertex buffer
	//   - itemSize: components per vertex
	//   - dataType: the component type
	//
	// Returns:
	//   - error: ErrUnknownLayout with no current layout, ErrUnknownBuffer for a stale buffer
	BindAttribute(slot uint32, buf BufferHandle, itemSize int, dataType common.DataType) error

	// BindIndexBuffer attaches an index buffer to the current layout.
	//
	// Parameters:
	//   - buf: the index buffer
	//   - dataType: the index type
	//
	// Returns:
	//   - error: ErrUnknownLayout with no current layout, ErrUnknownBuffer for a stale buffer
	BindIndexBuffer(buf BufferHandle, dataType common.DataType) error

	// DeleteVertexLayout frees a layout. Unknown handles are ignored.
	//
	// Parameters:
	//   - h: the layout to free
	DeleteVertexLayout(h LayoutHandle)
}

// DrawMode is the primitive topology of a draw.
type DrawMode uint8

const (
	DrawTriangles DrawMode = iota
	DrawLines
	DrawPoints
)

func (m DrawMode) String() string {
	switch m {
	case DrawLines:
		return "lines"
	case DrawPoints:
		return "points"
	}
	return "triangles"
}

// Drawer is implemented by devices that can issue a draw with the current layout.
type Drawer interface {
	// Draw submits count elements of the current layout.
	//
	// Parameters:
	//   - mode: the primitive topology
	//   - count: index count when indexed, vertex count otherwise
	//   - indexed: whether the bound index buffer drives the draw
	//
	// Returns:
	//   - error: ErrUnknownLayout with no current layout
	Draw(mode DrawMode, count int, indexed bool) error
}

// Framer is implemented by devices that render into a surface. BeginFrame opens a pass cleared
// to the clear color and resets the bound layout; EndFrame submits it.
type Framer interface {
	// SetClearColor sets the color the next BeginFrame clears to.
	//
	// Parameters:
	//   - color: RGBA clear color
	SetClearColor(color common.Vec4)

	// BeginFrame opens the frame.
	//
	// Returns:
	//   - error: an error if the frame target could not be acquired
	BeginFrame() error

	// EndFrame closes and submits the frame.
	EndFrame()
}
