package wgpu_device

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/cogentcore/webgpu/wgpu"
)

var vertexFormats = map[common.DataType][5]wgpu.VertexFormat{
	common.DataTypeFloat32: {
		1: wgpu.VertexFormatFloat32,
		2: wgpu.VertexFormatFloat32x2,
		3: wgpu.VertexFormatFloat32x3,
		4: wgpu.VertexFormatFloat32x4,
	},
	common.DataTypeUint32: {
		1: wgpu.VertexFormatUint32,
		2: wgpu.VertexFormatUint32x2,
		3: wgpu.VertexFormatUint32x3,
		4: wgpu.VertexFormatUint32x4,
	},
	common.DataTypeInt32: {
		1: wgpu.VertexFormatSint32,
		2: wgpu.VertexFormatSint32x2,
		3: wgpu.VertexFormatSint32x3,
		4: wgpu.VertexFormatSint32x4,
	},
	common.DataTypeUint8: {
		2: wgpu.VertexFormatUint8x2,
		4: wgpu.VertexFormatUint8x4,
	},
	common.DataTypeInt8: {
		2: wgpu.VertexFormatSint8x2,
		4: wgpu.VertexFormatSint8x4,
	},
}

// VertexFormat maps a component type and count to the matching WebGPU vertex format.
// 8-bit types only exist in two and four component variants.
//
// Parameters:
//   - dataType: the component type
//   - itemSize: components per vertex, 1 to 4
//
// Returns:
//   - wgpu.VertexFormat: the format
//   - error: an error when WebGPU has no such format
func VertexFormat(dataType common.DataType, itemSize int) (wgpu.VertexFormat, error) {
	formats, ok := vertexFormats[dataType]
	if ok && itemSize >= 1 && itemSize <= 4 && formats[itemSize] != wgpu.VertexFormatUndefined {
		return formats[itemSize], nil
	}
	return wgpu.VertexFormatUndefined, fmt.Errorf("gpu: no vertex format for %d x %s", itemSize, dataType)
}

func sortedSlots(slots map[uint32]wgpuSlot) []uint32 {
	return slices.Sorted(maps.Keys(slots))
}
