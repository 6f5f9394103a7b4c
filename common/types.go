// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types: vectors, quaternions, column-major matrices, bounding volumes and the scalar/usage enums shared by the CPU and GPU sides.
package common

// Vec3 is a 3-component float vector (x, y, z).
type Vec3 [3]float32

// Vec4 is a 4-component float vector, used for colors and homogeneous points.
type Vec4 [4]float32

// Quat is a rotation quaternion with vector part V and scalar part W.
// Transform operations keep it normalized.
type Quat struct {
	V Vec3
	W float32
}

// Mat4 is a 4x4 matrix stored in column-major order (OpenGL/WebGPU convention).
// Element (row r, column c) lives at index c*4 + r, so the translation is at 12, 13, 14.
type Mat4 [16]float32

// DataType enumerates the scalar types a vertex attribute can hold.
type DataType uint8

const (
	DataTypeFloat32 DataType = iota
	DataTypeUint32
	DataTypeInt32
	DataTypeUint8
	DataTypeInt8
)

// Size returns the size in bytes of a single scalar of this type.
//
// Returns:
//   - int: the scalar size in bytes, or 0 for an unknown type
func (d DataType) Size() int {
	switch d {
	case DataTypeFloat32, DataTypeUint32, DataTypeInt32:
		return 4
	case DataTypeUint8, DataTypeInt8:
		return 1
	}
	return 0
}

func (d DataType) String() string {
	switch d {
	case DataTypeFloat32:
		return "float32"
	case DataTypeUint32:
		return "uint32"
	case DataTypeInt32:
		return "int32"
	case DataTypeUint8:
		return "uint8"
	case DataTypeInt8:
		return "int8"
	}
	return "unknown"
}

// Usage is the GPU usage hint of an attribute buffer.
type Usage uint8

const (
	// UsageStatic marks data that is uploaded once and rarely rewritten.
	UsageStatic Usage = iota
	// UsageDynamic marks data that is rewritten frequently.
	UsageDynamic
)

func (u Usage) String() string {
	if u == UsageDynamic {
		return "dynamic"
	}
	return "static"
}

// Range is a span of scalar elements inside a flat buffer.
// A Count of WholeRange (-1) means the entire buffer.
type Range struct {
	Offset int
	Count  int
}

// WholeRange is the Count value that stands for "the whole buffer".
const WholeRange = -1

// IsWhole reports whether r covers the entire buffer.
func (r Range) IsWhole() bool {
	return r.Count == WholeRange
}

// End returns the first element index past the range.
func (r Range) End() int {
	return r.Offset + r.Count
}
