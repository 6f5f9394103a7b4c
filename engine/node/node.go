// Package node implements the scene-graph node: a local TRS transform, an owning list of
// children, a weak back-reference to the parent and the hierarchical world-matrix update.
//
// Nodes are not safe for concurrent use. The whole tree belongs to the render thread.
package node

import (
	"fmt"
	"weak"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/identity"
	"github.com/Carmen-Shannon/oxy-sg/engine/render_context"
)

// Object is anything that can live in the scene graph. Richer types embed *Node and get
// Base for free; the renderer reaches their extra behavior through capability interfaces.
type Object interface {
	// Base returns the scene-graph node backing the object.
	//
	// Returns:
	//   - *Node: the embedded node
	Base() *Node
}

// Disposer is implemented by objects that release resources when their subtree is destroyed.
type Disposer interface {
	Dispose()
}

// Node is a spatial node in the scene graph.
//
// The local matrix is the source of truth: every transform edit rewrites it and then
// re-derives position, quaternion and scale by decomposition. SetTransform is the exception;
// it stores the components and defers composition to the next UpdateMatrix.
type Node struct {
	ctx  render_context.RenderContext
	id   identity.ID
	kind Kind
	name string

	visible bool

	position   common.Vec3
	quaternion common.Quat
	scale      common.Vec3

	local     common.Mat4
	world     common.Mat4
	modelView common.Mat4
	normal    common.Mat4

	matrixNeedsUpdate bool

	parent   weak.Pointer[Node]
	owner    Object
	children []Object
	disposed bool
}

var _ Object = &Node{}

// New creates a standalone node with an identity transform and a fresh ID from ctx.
//
// Parameters:
//   - ctx: the render context issuing the ID
//   - options: functional options to configure the node
//
// Returns:
//   - *Node: the newly created node
func New(ctx render_context.RenderContext, options ...NodeBuilderOption) *Node {
	n := &Node{
		ctx:        ctx,
		id:         ctx.NextID(),
		visible:    true,
		quaternion: common.QuatIdentity(),
		scale:      common.Vec3{1, 1, 1},
		local:      common.Mat4Identity(),
		world:      common.Mat4Identity(),
		modelView:  common.Mat4Identity(),
		normal:     common.Mat4Identity(),
	}
	for _, option := range options {
		option(n)
	}
	if n.matrixNeedsUpdate {
		n.UpdateMatrix()
		n.world = n.local
	}
	return n
}

// Base returns n itself.
func (n *Node) Base() *Node {
	return n
}

// ID returns the node's unique identifier.
func (n *Node) ID() identity.ID {
	return n.id
}

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the node's name.
func (n *Node) Name() string {
	return n.name
}

// SetName sets the node's name.
func (n *Node) SetName(name string) {
	n.name = name
}

// Visible reports whether the node and, transitively, its subtree should be drawn.
func (n *Node) Visible() bool {
	return n.visible
}

// SetVisible toggles drawing of the node's subtree.
func (n *Node) SetVisible(visible bool) {
	n.visible = visible
}

// Context returns the render context the node was created with.
func (n *Node) Context() render_context.RenderContext {
	return n.ctx
}

// Position returns the decomposed local translation.
func (n *Node) Position() common.Vec3 {
	return n.position
}

// Quaternion returns the decomposed local rotation.
func (n *Node) Quaternion() common.Quat {
	return n.quaternion
}

// Scale returns the decomposed local scale.
func (n *Node) Scale() common.Vec3 {
	return n.scale
}

// LocalMatrix returns the local transform.
func (n *Node) LocalMatrix() common.Mat4 {
	return n.local
}

// WorldMatrix returns the world transform as of the last UpdateWorldMatrix.
func (n *Node) WorldMatrix() common.Mat4 {
	return n.world
}

// ModelViewMatrix returns view * world as of the last UpdateModelViewMatrix.
func (n *Node) ModelViewMatrix() common.Mat4 {
	return n.modelView
}

// NormalMatrix returns the inverse-transpose of the model-view basis.
func (n *Node) NormalMatrix() common.Mat4 {
	return n.normal
}

// WorldPosition returns the translation of the world matrix.
func (n *Node) WorldPosition() common.Vec3 {
	return n.world.Position()
}

// WorldDirection returns the normalized world-space forward axis (-Z).
func (n *Node) WorldDirection() common.Vec3 {
	return n.world.Column(2).Mul(-1).Normalize()
}

// SetPosition replaces the translation, leaving rotation and scale untouched.
//
// Parameters:
//   - p: the new local position
func (n *Node) SetPosition(p common.Vec3) {
	n.flushMatrix()
	n.local.SetColumn(3, p)
	n.position = p
}

// SetQuaternion replaces the rotation, keeping the current per-axis scale (including a mirrored axis).
//
// Parameters:
//   - q: the new rotation; normalized before use
func (n *Node) SetQuaternion(q common.Quat) {
	n.flushMatrix()
	n.local = common.Compose(n.position, q.Normalize(), n.scale)
	n.decompose()
}

// SetScale replaces the scale. The current basis columns are normalized and then
// multiplied by s, so rotation is not perturbed.
//
// Parameters:
//   - s: the new per-axis scale
func (n *Node) SetScale(s common.Vec3) {
	n.flushMatrix()
	for i := 0; i < 3; i++ {
		n.local.SetColumn(i, n.local.Column(i).Normalize().Mul(s[i]))
	}
	n.decompose()
}

// SetTransform stores position, rotation and scale without composing them. The local matrix
// is rebuilt on the next UpdateMatrix or UpdateWorldMatrix, or before any other transform edit.
//
// Parameters:
//   - p: local position
//   - q: local rotation; normalized before use
//   - s: local scale
func (n *Node) SetTransform(p common.Vec3, q common.Quat, s common.Vec3) {
	n.position = p
	n.quaternion = q.Normalize()
	n.scale = s
	n.matrixNeedsUpdate = true
}

// RotateAroundAxis rotates the node by angle radians around axis, given in the node's local
// space, on top of its current rotation. Position and scale are kept.
//
// Parameters:
//   - axis: local-space rotation axis
//   - angle: angle in radians
func (n *Node) RotateAroundAxis(axis common.Vec3, angle float32) {
	n.flushMatrix()
	q := n.quaternion.Mul(common.QuatFromAxisAngle(axis, angle)).Normalize()
	n.local = common.Compose(n.position, q, n.scale)
	n.decompose()
}

// SetRotateAroundAxis replaces the node's rotation with angle radians around axis.
// Unlike RotateAroundAxis the previous rotation is discarded. Position and scale are kept.
//
// Parameters:
//   - axis: rotation axis in parent space
//   - angle: angle in radians
func (n *Node) SetRotateAroundAxis(axis common.Vec3, angle float32) {
	n.flushMatrix()
	n.local = common.Compose(n.position, common.QuatFromAxisAngle(axis, angle), n.scale)
	n.decompose()
}

// RotateX rotates around the node's own x axis, cumulatively.
func (n *Node) RotateX(angle float32) {
	n.RotateAroundAxis(common.Vec3{1, 0, 0}, angle)
}

// RotateY rotates around the node's own y axis, cumulatively.
func (n *Node) RotateY(angle float32) {
	n.RotateAroundAxis(common.Vec3{0, 1, 0}, angle)
}

// RotateZ rotates around the node's own z axis, cumulatively.
func (n *Node) RotateZ(angle float32) {
	n.RotateAroundAxis(common.Vec3{0, 0, 1}, angle)
}

// LookAt rebuilds the local basis so the node's forward axis (-Z) points at target, keeping
// the position and the length of every basis column.
//
// target and up are in the parent's space. A target equal to the position, or an up vector
// parallel to the viewing direction, is a caller bug and panics.
//
// Parameters:
//   - target: the point to face
//   - up: the approximate up direction
func (n *Node) LookAt(target, up common.Vec3) {
	n.flushMatrix()
	sx := n.local.Column(0).Len()
	sy := n.local.Column(1).Len()
	sz := n.local.Column(2).Len()
	position := n.local.Position()

	forward := target.Sub(position).Normalize()
	if forward == (common.Vec3{}) {
		panic(fmt.Sprintf("node %d: LookAt target %v coincides with position", n.id, target))
	}
	right := up.Cross(forward.Mul(-1)).Normalize()
	if right == (common.Vec3{}) {
		panic(fmt.Sprintf("node %d: LookAt up %v is parallel to the view direction", n.id, up))
	}
	newUp := right.Cross(forward).Normalize()

	n.local.SetColumn(0, right.Mul(sx))
	n.local.SetColumn(1, newUp.Mul(sy))
	n.local.SetColumn(2, forward.Mul(-sz))
	n.local.SetColumn(3, position)
	n.decompose()
}

// SetLocalMatrix replaces the local transform and re-derives position, rotation and scale.
func (n *Node) SetLocalMatrix(m common.Mat4) {
	n.local = m
	n.matrixNeedsUpdate = false
	n.decompose()
}

// SetWorldMatrix overwrites the cached world transform. The next UpdateWorldMatrix recomputes it.
func (n *Node) SetWorldMatrix(m common.Mat4) {
	n.world = m
}

// UpdateMatrix composes the local matrix from position, rotation and scale.
func (n *Node) UpdateMatrix() {
	n.local = common.Compose(n.position, n.quaternion, n.scale)
	n.matrixNeedsUpdate = false
}

// UpdateWorldMatrix recomputes the world transform.
//
// With updateParent set, a live parent first refreshes itself and its own ancestors. The local
// matrix is recomposed only when SetTransform left it stale. With updateChildren set, the
// whole subtree is refreshed; the recursion never walks back up to parents.
//
// Parameters:
//   - updateParent: refresh the ancestor chain first
//   - updateChildren: refresh every descendant afterwards
//
// Returns:
//   - common.Mat4: the new world matrix
func (n *Node) UpdateWorldMatrix(updateParent, updateChildren bool) common.Mat4 {
	parent := n.Parent()
	if updateParent && parent != nil {
		parent.UpdateWorldMatrix(true, false)
	}

	if n.matrixNeedsUpdate {
		n.UpdateMatrix()
	}

	if parent != nil {
		n.world = parent.world.Mul(n.local)
	} else {
		n.world = n.local
	}

	if updateChildren {
		for _, child := range n.children {
			child.Base().UpdateWorldMatrix(false, true)
		}
	}
	return n.world
}

// UpdateModelViewMatrix stores view * world and the matching normal matrix.
//
// Parameters:
//   - view: the camera view matrix
func (n *Node) UpdateModelViewMatrix(view common.Mat4) {
	n.modelView = view.Mul(n.world)
	n.normal = n.modelView.NormalMatrix()
}

func (n *Node) flushMatrix() {
	if n.matrixNeedsUpdate {
		n.UpdateMatrix()
	}
}

func (n *Node) decompose() {
	n.position, n.quaternion, n.scale = n.local.Decompose()
}
