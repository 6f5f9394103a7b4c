package node

import (
	"fmt"
	"weak"
)

// Parent returns the live parent node, or nil for a root or a parent that has been collected.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// Owner returns the outermost object this node backs, as registered when it was added to a
// parent. Nodes never attached report themselves.
func (n *Node) Owner() Object {
	if n.owner == nil {
		return n
	}
	return n.owner
}

// Children returns the owned children in insertion order. The slice must not be modified.
func (n *Node) Children() []Object {
	return n.children
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// IsAncestorOf reports whether n is other's parent, grandparent, and so on.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.Parent(); p != nil; p = p.Parent() {
		if p == n {
			return true
		}
	}
	return false
}

// AddChild attaches child under n and installs the weak back-reference.
//
// Adding a child that is already attached to n is a no-op. A child attached elsewhere is
// detached from its old parent first. Attaching a node to itself or to one of its own
// descendants panics, since the tree would no longer be a tree.
//
// Parameters:
//   - child: the object to attach
func (n *Node) AddChild(child Object) {
	c := child.Base()
	if c == n {
		panic(fmt.Sprintf("node %d: cannot add itself as a child", n.id))
	}
	if c.IsAncestorOf(n) {
		panic(fmt.Sprintf("node %d: cannot add ancestor %d as a child", n.id, c.id))
	}
	if n.indexOf(c) >= 0 {
		return
	}
	if old := c.Parent(); old != nil {
		old.RemoveChild(child)
	}

	c.parent = weak.Make(n)
	c.owner = child
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. Objects that are not children of n are ignored.
//
// Parameters:
//   - child: the object to detach
//
// Returns:
//   - bool: true if child was removed
func (n *Node) RemoveChild(child Object) bool {
	c := child.Base()
	i := n.indexOf(c)
	if i < 0 {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = weak.Pointer[Node]{}
	return true
}

// RemoveFromParent detaches n from its parent, if it has one.
func (n *Node) RemoveFromParent() {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n.Owner())
	}
}

// Traverse calls fn for n's owner and every descendant, depth first, parents before children.
//
// Parameters:
//   - fn: the visitor
func (n *Node) Traverse(fn func(Object)) {
	fn(n.Owner())
	for _, child := range n.children {
		child.Base().Traverse(fn)
	}
}

// TraverseVisible is Traverse restricted to visible subtrees. An invisible node hides its descendants.
//
// Parameters:
//   - fn: the visitor
func (n *Node) TraverseVisible(fn func(Object)) {
	if !n.visible {
		return
	}
	fn(n.Owner())
	for _, child := range n.children {
		child.Base().TraverseVisible(fn)
	}
}

// Disposed reports whether Dispose has been called.
func (n *Node) Disposed() bool {
	return n.disposed
}

// Dispose destroys the subtree rooted at n: children are disposed first (through their own
// Dispose when they implement Disposer), then n is detached from its parent. Ownership only
// cascades downward, so the parent is left intact.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true

	children := n.children
	n.children = nil
	for _, child := range children {
		c := child.Base()
		c.parent = weak.Pointer[Node]{}
		if d, ok := child.(Disposer); ok {
			d.Dispose()
		} else {
			c.Dispose()
		}
	}
	n.RemoveFromParent()
}

func (n *Node) indexOf(c *Node) int {
	for i, child := range n.children {
		if child.Base() == c {
			return i
		}
	}
	return -1
}
