package node

import "github.com/Carmen-Shannon/oxy-sg/common"

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*Node)

// WithKind sets the node variant. Defaults to KindObject.
//
// Parameters:
//   - kind: the node kind
//
// Returns:
//   - NodeBuilderOption: functional option to set the kind
func WithKind(kind Kind) NodeBuilderOption {
	return func(n *Node) {
		n.kind = kind
	}
}

// WithName sets the node name.
//
// Parameters:
//   - name: a human readable name used in logs
//
// Returns:
//   - NodeBuilderOption: functional option to set the name
func WithName(name string) NodeBuilderOption {
	return func(n *Node) {
		n.name = name
	}
}

// WithVisible sets the initial visibility. Defaults to true.
//
// Parameters:
//   - visible: false to hide the subtree
//
// Returns:
//   - NodeBuilderOption: functional option to set visibility
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *Node) {
		n.visible = visible
	}
}

// WithPosition sets the initial local position.
//
// Parameters:
//   - p: the local position
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(p common.Vec3) NodeBuilderOption {
	return func(n *Node) {
		n.position = p
		n.matrixNeedsUpdate = true
	}
}

// WithQuaternion sets the initial local rotation.
//
// Parameters:
//   - q: the local rotation
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithQuaternion(q common.Quat) NodeBuilderOption {
	return func(n *Node) {
		n.quaternion = q.Normalize()
		n.matrixNeedsUpdate = true
	}
}

// WithScale sets the initial local scale.
//
// Parameters:
//   - s: the local scale
//
// Returns:
//   - NodeBuilderOption: functional option to set the scale
func WithScale(s common.Vec3) NodeBuilderOption {
	return func(n *Node) {
		n.scale = s
		n.matrixNeedsUpdate = true
	}
}
