package node

// Kind discriminates the closed set of node variants. Behavior that only some kinds have is
// reached through capability interfaces (a renderable object, a camera) rather than flags.
type Kind uint8

const (
	KindObject Kind = iota
	KindGroup
	KindScene
	KindMesh
	KindCamera
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindGroup:
		return "group"
	case KindScene:
		return "scene"
	case KindMesh:
		return "mesh"
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	}
	return "unknown"
}
