// Package primitives generates vertex data for procedural shapes.
//
// Generators return plain slices so they can run on any goroutine. Attributes and geometries
// are created from the data on the render thread by ToGeometry.
package primitives

import (
	"github.com/Carmen-Shannon/oxy-sg/engine/attribute"
	"github.com/Carmen-Shannon/oxy-sg/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
	"github.com/chewxy/math32"
)

// Data is the raw output of a generator.
type Data struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in d.
func (d Data) VertexCount() int {
	return len(d.Positions) / 3
}

// Box generates an axis-aligned box centered on the origin with four vertices per face so
// every face has flat normals.
//
// Parameters:
//   - width: size along X
//   - height: size along Y
//   - depth: size along Z
//
// Returns:
//   - Data: 24 vertices and 36 indices
func Box(width, height, depth float32) Data {
	hw, hh, hd := width/2, height/2, depth/2
	d := Data{
		Positions: make([]float32, 0, 24*3),
		Normals:   make([]float32, 0, 24*3),
		UVs:       make([]float32, 0, 24*2),
		Indices:   make([]uint32, 0, 36),
	}

	// each face: normal, then u and v axes scaled to the half extents
	faces := [6][3][3]float32{
		{{1, 0, 0}, {0, 0, -hd}, {0, hh, 0}},
		{{-1, 0, 0}, {0, 0, hd}, {0, hh, 0}},
		{{0, 1, 0}, {hw, 0, 0}, {0, 0, -hd}},
		{{0, -1, 0}, {hw, 0, 0}, {0, 0, hd}},
		{{0, 0, 1}, {hw, 0, 0}, {0, hh, 0}},
		{{0, 0, -1}, {-hw, 0, 0}, {0, hh, 0}},
	}
	half := [3]float32{hw, hh, hd}

	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(d.VertexCount())
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			for k := range 3 {
				d.Positions = append(d.Positions, n[k]*half[k]+c[0]*u[k]+c[1]*v[k])
			}
			d.Normals = append(d.Normals, n[0], n[1], n[2])
			d.UVs = append(d.UVs, (c[0]+1)/2, (c[1]+1)/2)
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return d
}

// Plane generates a quad in the XY plane facing +Z.
//
// Parameters:
//   - width: size along X
//   - height: size along Y
//
// Returns:
//   - Data: 4 vertices and 6 indices
func Plane(width, height float32) Data {
	hw, hh := width/2, height/2
	return Data{
		Positions: []float32{-hw, -hh, 0, hw, -hh, 0, hw, hh, 0, -hw, hh, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Indices:   []uint32{0, 1, 2, 2, 3, 0},
	}
}

// Sphere generates a UV sphere centered on the origin. Segment counts below the minimum are
// raised to it: 3 around and 2 from pole to pole.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: segments around the Y axis
//   - heightSegments: segments from pole to pole
//
// Returns:
//   - Data: (widthSegments+1)*(heightSegments+1) vertices
func Sphere(radius float32, widthSegments, heightSegments int) Data {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertices := (widthSegments + 1) * (heightSegments + 1)
	d := Data{
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		UVs:       make([]float32, 0, vertices*2),
		Indices:   make([]uint32, 0, widthSegments*(heightSegments-1)*6),
	}

	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)

			nx, ny, nz := -cosPhi*sinTheta, cosTheta, sinPhi*sinTheta
			d.Positions = append(d.Positions, radius*nx, radius*ny, radius*nz)
			d.Normals = append(d.Normals, nx, ny, nz)
			d.UVs = append(d.UVs, u, 1-v)
		}
	}

	row := uint32(widthSegments + 1)
	for y := range uint32(heightSegments) {
		for x := range uint32(widthSegments) {
			a := y*row + x + 1
			b := y*row + x
			c := (y+1)*row + x
			e := (y+1)*row + x + 1
			if y != 0 {
				d.Indices = append(d.Indices, a, b, e)
			}
			if y != uint32(heightSegments)-1 {
				d.Indices = append(d.Indices, b, c, e)
			}
		}
	}
	return d
}

// ToGeometry wraps d in attributes named position, normal and uv plus an index, and computes
// the bounding sphere. Empty streams are left out.
//
// Parameters:
//   - ctx: the render context issuing IDs
//   - d: the generated data, whose slices are used directly
//   - options: extra geometry options such as geometry.WithName
//
// Returns:
//   - *geometry.Geometry: the new geometry
func ToGeometry(ctx render_context.RenderContext, d Data, options ...geometry.GeometryBuilderOption) *geometry.Geometry {
	geo := geometry.New(ctx, options...)
	if len(d.Positions) > 0 {
		geo.Set(geometry.AttributePosition, attribute.New(ctx, d.Positions, 3))
	}
	if len(d.Normals) > 0 {
		geo.Set("normal", attribute.New(ctx, d.Normals, 3))
	}
	if len(d.UVs) > 0 {
		geo.Set("uv", attribute.New(ctx, d.UVs, 2))
	}
	if len(d.Indices) > 0 {
		geo.SetIndex(attribute.New(ctx, d.Indices, 1))
	}
	if geo.Has(geometry.AttributePosition) {
		geo.ComputeBoundingSphere()
	}
	return geo
}
