// Package wgpu_device implements gpu.Device on top of WebGPU.
package wgpu_device

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoSurface is returned by frame operations on a device created without a surface.
var ErrNoSurface = errors.New("gpu: device has no surface")

// WGPUDevice is the WebGPU implementation of gpu.Device.
//
// Buffers are real wgpu buffers written through the queue. Each keeps a host shadow padded to
// four bytes, so partial writes can be widened to the alignment WriteBuffer requires. Vertex
// layouts are recorded slot bindings that are replayed with SetVertexBuffer and SetIndexBuffer
// on the open render pass.
type WGPUDevice interface {
	gpu.Device
	gpu.Drawer
	gpu.Framer

	// ConfigureSurface (re)configures the swapchain for the given framebuffer size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: ErrNoSurface for a headless device
	ConfigureSurface(width, height int) error

	// Present presents the acquired texture and releases it.
	Present()

	// SetPipeline sets the render pipeline used by Draw. Without one, Draw only binds state.
	//
	// Parameters:
	//   - p: the pipeline, or nil
	SetPipeline(p *wgpu.RenderPipeline)

	// VertexBufferLayouts describes the current layout for pipeline creation.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per bound slot, ordered by slot
	//   - error: gpu.ErrUnknownLayout with no current layout
	VertexBufferLayouts() ([]wgpu.VertexBufferLayout, error)

	// Device returns the underlying wgpu device.
	Device() *wgpu.Device

	// Release frees every buffer and layout and then the device itself.
	Release()
}

type wgpuBuffer struct {
	buf    *wgpu.Buffer
	target gpu.Target
	usage  common.Usage
	size   int
	shadow []byte
}

type wgpuSlot struct {
	buf    gpu.BufferHandle
	format wgpu.VertexFormat
	stride uint64
}

type wgpuLayout struct {
	slots       map[uint32]wgpuSlot
	index       gpu.BufferHandle
	indexFormat wgpu.IndexFormat
}

type wgpuDeviceImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	presentMode          wgpu.PresentMode
	forceFallbackAdapter bool
	clearColor           wgpu.Color
	pipeline             *wgpu.RenderPipeline

	buffers    map[gpu.BufferHandle]*wgpuBuffer
	layouts    map[gpu.LayoutHandle]*wgpuLayout
	nextBuffer gpu.BufferHandle
	nextLayout gpu.LayoutHandle
	current    gpu.LayoutHandle

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	lost bool
}

var _ WGPUDevice = &wgpuDeviceImpl{}

// NewWGPUDevice creates the instance, adapter, device and queue. The calling goroutine is locked
// to its OS thread, as the surface and the window loop must share it.
//
// Parameters:
//   - surfaceDescriptor: the window surface, or nil for a headless device
//   - options: functional options to configure the device
//
// Returns:
//   - WGPUDevice: the newly created device
//   - error: an error if no adapter or device could be obtained
func NewWGPUDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...WGPUDeviceBuilderOption) (WGPUDevice, error) {
	runtime.LockOSThread()
	d := &wgpuDeviceImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		buffers:     make(map[gpu.BufferHandle]*wgpuBuffer),
		layouts:     make(map[gpu.LayoutHandle]*wgpuLayout),
	}
	for _, option := range options {
		option(d)
	}

	if surfaceDescriptor != nil {
		d.surface = d.instance.CreateSurface(surfaceDescriptor)
	}

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: d.forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	d.adapter = a

	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "oxy-sg Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()

	return d, nil
}

func (d *wgpuDeviceImpl) ConfigureSurface(width, height int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.surface == nil {
		return ErrNoSurface
	}
	capabilities := d.surface.GetCapabilities(d.adapter)
	d.surfaceFormat = capabilities.Formats[0]

	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: d.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	return nil
}

func (d *wgpuDeviceImpl) SetClearColor(color common.Vec4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearColor = toColor(color)
}

func toColor(c common.Vec4) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

func (d *wgpuDeviceImpl) BeginFrame() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return gpu.ErrDeviceLost
	}
	if d.surface == nil {
		return ErrNoSurface
	}
	if d.frameSurface != nil {
		return errors.New("gpu: previous frame surface not yet presented")
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	d.framePass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: d.clearColor,
			},
		},
	})
	d.frameEncoder = encoder
	d.frameSurface = surfaceTexture
	d.frameView = view
	d.current = 0
	return nil
}

func (d *wgpuDeviceImpl) EndFrame() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.framePass == nil {
		return
	}
	d.framePass.End()
	d.framePass.Release()
	d.framePass = nil

	commandBuffer, err := d.frameEncoder.Finish(nil)
	d.frameEncoder.Release()
	d.frameEncoder = nil
	if err != nil {
		return
	}
	d.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

func (d *wgpuDeviceImpl) Present() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frameSurface == nil {
		return
	}
	d.surface.Present()

	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}
	d.frameSurface.Release()
	d.frameSurface = nil
}

func (d *wgpuDeviceImpl) SetPipeline(p *wgpu.RenderPipeline) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pipeline = p
}

func (d *wgpuDeviceImpl) Device() *wgpu.Device {
	return d.device
}

func bufferUsage(target gpu.Target) wgpu.BufferUsage {
	if target == gpu.TargetIndex {
		return wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	}
	return wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
}

// allocate creates a wgpu buffer sized to hold n bytes rounded up to four, never less than four.
func (d *wgpuDeviceImpl) allocate(h gpu.BufferHandle, target gpu.Target, n int) (*wgpu.Buffer, error) {
	return d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("oxy-sg %s buffer %d", target, h),
		Size:             uint64(max(4, align4(n))),
		Usage:            bufferUsage(target),
		MappedAtCreation: false,
	})
}

func (d *wgpuDeviceImpl) CreateBuffer(target gpu.Target, usage common.Usage, data []byte) (gpu.BufferHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return 0, gpu.ErrDeviceLost
	}
	h := d.nextBuffer + 1
	buf, err := d.allocate(h, target, len(data))
	if err != nil {
		return 0, err
	}
	d.nextBuffer = h

	b := &wgpuBuffer{
		buf:    buf,
		target: target,
		usage:  usage,
		size:   len(data),
		shadow: make([]byte, max(4, align4(len(data)))),
	}
	copy(b.shadow, data)
	d.buffers[h] = b

	if err := d.queue.WriteBuffer(buf, 0, b.shadow); err != nil {
		return 0, err
	}
	return h, nil
}

func (d *wgpuDeviceImpl) UploadBuffer(h gpu.BufferHandle, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return gpu.ErrDeviceLost
	}
	b, ok := d.buffers[h]
	if !ok {
		return fmt.Errorf("upload %d: %w", h, gpu.ErrUnknownBuffer)
	}

	if need := max(4, align4(len(data))); need != len(b.shadow) {
		buf, err := d.allocate(h, b.target, len(data))
		if err != nil {
			return err
		}
		b.buf.Release()
		b.buf = buf
		b.shadow = make([]byte, need)
	} else {
		clear(b.shadow)
	}
	copy(b.shadow, data)
	b.size = len(data)

	return d.queue.WriteBuffer(b.buf, 0, b.shadow)
}

func (d *wgpuDeviceImpl) UpdateBuffer(h gpu.BufferHandle, byteOffset int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return gpu.ErrDeviceLost
	}
	b, ok := d.buffers[h]
	if !ok {
		return fmt.Errorf("update %d: %w", h, gpu.ErrUnknownBuffer)
	}
	if byteOffset < 0 || byteOffset+len(data) > b.size {
		return fmt.Errorf("update %d [%d, %d) of %d bytes: %w", h, byteOffset, byteOffset+len(data), b.size, gpu.ErrOutOfBounds)
	}
	copy(b.shadow[byteOffset:], data)

	start, end := alignSpan(byteOffset, byteOffset+len(data), len(b.shadow))
	return d.queue.WriteBuffer(b.buf, uint64(start), b.shadow[start:end])
}

// align4 rounds n up to the next multiple of four.
func align4(n int) int {
	return (n + 3) &^ 3
}

// alignSpan widens [start, end) outward to four-byte boundaries, clamped to limit.
func alignSpan(start, end, limit int) (int, int) {
	return start &^ 3, min(align4(end), limit)
}

func (d *wgpuDeviceImpl) DeleteBuffer(h gpu.BufferHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[h]
	if !ok {
		return
	}
	b.buf.Release()
	delete(d.buffers, h)
}

func (d *wgpuDeviceImpl) CreateVertexLayout() (gpu.LayoutHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return 0, gpu.ErrDeviceLost
	}
	d.nextLayout++
	d.layouts[d.nextLayout] = &wgpuLayout{slots: make(map[uint32]wgpuSlot)}
	return d.nextLayout, nil
}

func (d *wgpuDeviceImpl) BindVertexLayout(h gpu.LayoutHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return gpu.ErrDeviceLost
	}
	l, ok := d.layouts[h]
	if !ok {
		return fmt.Errorf("bind layout %d: %w", h, gpu.ErrUnknownLayout)
	}
	d.current = h

	if d.framePass == nil {
		return nil
	}
	for slot, s := range l.slots {
		if b, ok := d.buffers[s.buf]; ok {
			d.framePass.SetVertexBuffer(slot, b.buf, 0, wgpu.WholeSize)
		}
	}
	if b, ok := d.buffers[l.index]; ok {
		d.framePass.SetIndexBuffer(b.buf, l.indexFormat, 0, wgpu.WholeSize)
	}
	return nil
}

func (d *wgpuDeviceImpl) BindAttribute(slot uint32, buf gpu.BufferHandle, itemSize int, dataType common.DataType) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.layouts[d.current]
	if !ok {
		return fmt.Errorf("bind slot %d: no current layout: %w", slot, gpu.ErrUnknownLayout)
	}
	b, ok := d.buffers[buf]
	if !ok {
		return fmt.Errorf("bind slot %d: %w", slot, gpu.ErrUnknownBuffer)
	}
	format, err := VertexFormat(dataType, itemSize)
	if err != nil {
		return fmt.Errorf("bind slot %d: %w", slot, err)
	}

	l.slots[slot] = wgpuSlot{buf: buf, format: format, stride: uint64(itemSize * dataType.Size())}
	if d.framePass != nil {
		d.framePass.SetVertexBuffer(slot, b.buf, 0, wgpu.WholeSize)
	}
	return nil
}

func (d *wgpuDeviceImpl) BindIndexBuffer(buf gpu.BufferHandle, dataType common.DataType) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.layouts[d.current]
	if !ok {
		return fmt.Errorf("bind index: no current layout: %w", gpu.ErrUnknownLayout)
	}
	b, ok := d.buffers[buf]
	if !ok {
		return fmt.Errorf("bind index: %w", gpu.ErrUnknownBuffer)
	}

	if dataType != common.DataTypeUint32 {
		return fmt.Errorf("bind index: unsupported index type %s", dataType)
	}
	l.index = buf
	l.indexFormat = wgpu.IndexFormatUint32
	if d.framePass != nil {
		d.framePass.SetIndexBuffer(b.buf, l.indexFormat, 0, wgpu.WholeSize)
	}
	return nil
}

func (d *wgpuDeviceImpl) DeleteVertexLayout(h gpu.LayoutHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.layouts, h)
	if d.current == h {
		d.current = 0
	}
}

func (d *wgpuDeviceImpl) Draw(mode gpu.DrawMode, count int, indexed bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.layouts[d.current]; !ok {
		return fmt.Errorf("draw: no current layout: %w", gpu.ErrUnknownLayout)
	}
	// topology is baked into the pipeline; without one the pass only carries vertex state
	if d.framePass == nil || d.pipeline == nil {
		return nil
	}
	d.framePass.SetPipeline(d.pipeline)
	if indexed {
		d.framePass.DrawIndexed(uint32(count), 1, 0, 0, 0)
	} else {
		d.framePass.Draw(uint32(count), 1, 0, 0)
	}
	return nil
}

func (d *wgpuDeviceImpl) VertexBufferLayouts() ([]wgpu.VertexBufferLayout, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.layouts[d.current]
	if !ok {
		return nil, fmt.Errorf("vertex buffer layouts: %w", gpu.ErrUnknownLayout)
	}
	out := make([]wgpu.VertexBufferLayout, 0, len(l.slots))
	for _, slot := range sortedSlots(l.slots) {
		s := l.slots[slot]
		out = append(out, wgpu.VertexBufferLayout{
			ArrayStride: s.stride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: s.format, Offset: 0, ShaderLocation: slot},
			},
		})
	}
	return out, nil
}

func (d *wgpuDeviceImpl) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lost {
		return
	}
	d.lost = true
	for h, b := range d.buffers {
		b.buf.Release()
		delete(d.buffers, h)
	}
	clear(d.layouts)
	if d.surface != nil {
		d.surface.Release()
	}
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}
