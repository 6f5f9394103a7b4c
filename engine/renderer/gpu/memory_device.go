package gpu

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-sg/common"
)

// Op names a recorded device call.
type Op string

const (
	OpCreateBuffer       Op = "CreateBuffer"
	OpUploadBuffer       Op = "UploadBuffer"
	OpUpdateBuffer       Op = "UpdateBuffer"
	OpDeleteBuffer       Op = "DeleteBuffer"
	OpCreateVertexLayout Op = "CreateVertexLayout"
	OpBindVertexLayout   Op = "BindVertexLayout"
	OpBindAttribute      Op = "BindAttribute"
	OpBindIndexBuffer    Op = "BindIndexBuffer"
	OpDeleteVertexLayout Op = "DeleteVertexLayout"
	OpDraw               Op = "Draw"
	OpBeginFrame         Op = "BeginFrame"
	OpEndFrame           Op = "EndFrame"
)

// Call is one recorded device call. Fields that do not apply to Op are zero.
type Call struct {
	Op     Op
	Buffer BufferHandle
	Layout LayoutHandle
	Slot   uint32
	Offset int
	Size   int
}

// MemoryBuffer is the host-side state of an emulated buffer.
type MemoryBuffer struct {
	Target      Target
	Usage       common.Usage
	Data        []byte
	Allocations int
}

// AttributeBinding is one slot of an emulated vertex layout.
type AttributeBinding struct {
	Buffer   BufferHandle
	ItemSize int
	DataType common.DataType
}

// MemoryLayout is the host-side state of an emulated vertex layout.
type MemoryLayout struct {
	Attributes map[uint32]AttributeBinding
	Index      BufferHandle
	IndexType  common.DataType
}

// MemoryDevice is an emulated Device that stores buffer contents in host memory and records
// every call in order. It is used for headless runs and tests.
type MemoryDevice struct {
	buffers    map[BufferHandle]*MemoryBuffer
	layouts    map[LayoutHandle]*MemoryLayout
	nextBuffer BufferHandle
	nextLayout LayoutHandle
	current    LayoutHandle
	calls      []Call
	failNext   error
	lost       bool
	clearColor common.Vec4
	inFrame    bool
	noCallLog  bool
}

var (
	_ Device = &MemoryDevice{}
	_ Drawer = &MemoryDevice{}
	_ Framer = &MemoryDevice{}
)

// MemoryDeviceOption is a functional option for configuring a MemoryDevice during construction.
type MemoryDeviceOption func(*MemoryDevice)

// WithCallLog turns call recording on or off. Long headless runs turn it off so the log does
// not grow with every frame. It is on by default.
func WithCallLog(enabled bool) MemoryDeviceOption {
	return func(d *MemoryDevice) {
		d.noCallLog = !enabled
	}
}

// NewMemoryDevice creates an empty emulated device.
func NewMemoryDevice(options ...MemoryDeviceOption) *MemoryDevice {
	d := &MemoryDevice{
		buffers: make(map[BufferHandle]*MemoryBuffer),
		layouts: make(map[LayoutHandle]*MemoryLayout),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *MemoryDevice) record(c Call) {
	if d.noCallLog {
		return
	}
	d.calls = append(d.calls, c)
}

// FailNextAllocation makes the next CreateBuffer, reallocating UploadBuffer or
// CreateVertexLayout return err.
func (d *MemoryDevice) FailNextAllocation(err error) {
	d.failNext = err
}

// Lose simulates device loss. Every later call fails with ErrDeviceLost.
func (d *MemoryDevice) Lose() {
	d.lost = true
}

func (d *MemoryDevice) allocFailure() error {
	if d.lost {
		return ErrDeviceLost
	}
	if err := d.failNext; err != nil {
		d.failNext = nil
		return err
	}
	return nil
}

func (d *MemoryDevice) CreateBuffer(target Target, usage common.Usage, data []byte) (BufferHandle, error) {
	if err := d.allocFailure(); err != nil {
		return 0, err
	}
	d.nextBuffer++
	h := d.nextBuffer
	d.buffers[h] = &MemoryBuffer{
		Target:      target,
		Usage:       usage,
		Data:        slices.Clone(data),
		Allocations: 1,
	}
	d.record(Call{Op: OpCreateBuffer, Buffer: h, Size: len(data)})
	return h, nil
}

func (d *MemoryDevice) UploadBuffer(h BufferHandle, data []byte) error {
	if d.lost {
		return ErrDeviceLost
	}
	b, ok := d.buffers[h]
	if !ok {
		return fmt.Errorf("upload %d: %w", h, ErrUnknownBuffer)
	}
	if len(data) != len(b.Data) {
		if err := d.allocFailure(); err != nil {
			return err
		}
		b.Data = make([]byte, len(data))
		b.Allocations++
	}
	copy(b.Data, data)
	d.record(Call{Op: OpUploadBuffer, Buffer: h, Size: len(data)})
	return nil
}

func (d *MemoryDevice) UpdateBuffer(h BufferHandle, byteOffset int, data []byte) error {
	if d.lost {
		return ErrDeviceLost
	}
	b, ok := d.buffers[h]
	if !ok {
		return fmt.Errorf("update %d: %w", h, ErrUnknownBuffer)
	}
	if byteOffset < 0 || byteOffset+len(data) > len(b.Data) {
		return fmt.Errorf("update %d [%d, %d) of %d bytes: %w", h, byteOffset, byteOffset+len(data), len(b.Data), ErrOutOfBounds)
	}
	copy(b.Data[byteOffset:], data)
	d.record(Call{Op: OpUpdateBuffer, Buffer: h, Offset: byteOffset, Size: len(data)})
	return nil
}

func (d *MemoryDevice) DeleteBuffer(h BufferHandle) {
	if _, ok := d.buffers[h]; !ok {
		return
	}
	delete(d.buffers, h)
	d.record(Call{Op: OpDeleteBuffer, Buffer: h})
}

func (d *MemoryDevice) CreateVertexLayout() (LayoutHandle, error) {
	if err := d.allocFailure(); err != nil {
		return 0, err
	}
	d.nextLayout++
	h := d.nextLayout
	d.layouts[h] = &MemoryLayout{Attributes: make(map[uint32]AttributeBinding)}
	d.record(Call{Op: OpCreateVertexLayout, Layout: h})
	return h, nil
}

func (d *MemoryDevice) BindVertexLayout(h LayoutHandle) error {
	if d.lost {
		return ErrDeviceLost
	}
	if _, ok := d.layouts[h]; !ok {
		return fmt.Errorf("bind layout %d: %w", h, ErrUnknownLayout)
	}
	d.current = h
	d.record(Call{Op: OpBindVertexLayout, Layout: h})
	return nil
}

func (d *MemoryDevice) currentLayout() (*MemoryLayout, error) {
	if d.lost {
		return nil, ErrDeviceLost
	}
	l, ok := d.layouts[d.current]
	if !ok {
		return nil, fmt.Errorf("no current layout: %w", ErrUnknownLayout)
	}
	return l, nil
}

func (d *MemoryDevice) BindAttribute(slot uint32, buf BufferHandle, itemSize int, dataType common.DataType) error {
	l, err := d.currentLayout()
	if err != nil {
		return err
	}
	if _, ok := d.buffers[buf]; !ok {
		return fmt.Errorf("bind slot %d: %w", slot, ErrUnknownBuffer)
	}
	l.Attributes[slot] = AttributeBinding{Buffer: buf, ItemSize: itemSize, DataType: dataType}
	d.record(Call{Op: OpBindAttribute, Buffer: buf, Layout: d.current, Slot: slot})
	return nil
}

func (d *MemoryDevice) BindIndexBuffer(buf BufferHandle, dataType common.DataType) error {
	l, err := d.currentLayout()
	if err != nil {
		return err
	}
	if _, ok := d.buffers[buf]; !ok {
		return fmt.Errorf("bind index: %w", ErrUnknownBuffer)
	}
	l.Index = buf
	l.IndexType = dataType
	d.record(Call{Op: OpBindIndexBuffer, Buffer: buf, Layout: d.current})
	return nil
}

func (d *MemoryDevice) DeleteVertexLayout(h LayoutHandle) {
	if _, ok := d.layouts[h]; !ok {
		return
	}
	delete(d.layouts, h)
	if d.current == h {
		d.current = 0
	}
	d.record(Call{Op: OpDeleteVertexLayout, Layout: h})
}

func (d *MemoryDevice) Draw(mode DrawMode, count int, indexed bool) error {
	if _, err := d.currentLayout(); err != nil {
		return err
	}
	d.record(Call{Op: OpDraw, Layout: d.current, Size: count})
	return nil
}

func (d *MemoryDevice) SetClearColor(color common.Vec4) {
	d.clearColor = color
}

func (d *MemoryDevice) BeginFrame() error {
	if d.lost {
		return ErrDeviceLost
	}
	d.current = 0
	d.inFrame = true
	d.record(Call{Op: OpBeginFrame})
	return nil
}

func (d *MemoryDevice) EndFrame() {
	if !d.inFrame {
		return
	}
	d.inFrame = false
	d.record(Call{Op: OpEndFrame})
}

// ClearColor returns the color set by SetClearColor.
func (d *MemoryDevice) ClearColor() common.Vec4 {
	return d.clearColor
}

// Buffer returns the emulated state of h.
func (d *MemoryDevice) Buffer(h BufferHandle) (*MemoryBuffer, bool) {
	b, ok := d.buffers[h]
	return b, ok
}

// Layout returns the emulated state of h.
func (d *MemoryDevice) Layout(h LayoutHandle) (*MemoryLayout, bool) {
	l, ok := d.layouts[h]
	return l, ok
}

// CurrentLayout returns the layout bound last, or 0.
func (d *MemoryDevice) CurrentLayout() LayoutHandle {
	return d.current
}

// BufferHandles returns the live buffer handles in ascending order.
func (d *MemoryDevice) BufferHandles() []BufferHandle {
	return slices.Sorted(maps.Keys(d.buffers))
}

// LayoutCount returns the number of live layouts.
func (d *MemoryDevice) LayoutCount() int {
	return len(d.layouts)
}

// ResidentBytes returns the total size of every live buffer.
func (d *MemoryDevice) ResidentBytes() int {
	total := 0
	for _, b := range d.buffers {
		total += len(b.Data)
	}
	return total
}

// Calls returns the recorded calls in order.
func (d *MemoryDevice) Calls() []Call {
	return d.calls
}

// Count returns how many calls of op were recorded.
func (d *MemoryDevice) Count(op Op) int {
	n := 0
	for _, c := range d.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log without touching buffers or layouts.
func (d *MemoryDevice) ResetCalls() {
	d.calls = d.calls[:0]
}
