package scene

// ShapeType tags the signed-distance primitive a shape record describes. The
// numeric values are part of the shader contract.
type ShapeType uint32

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapePlane
	ShapeTorus
	ShapeCylinder
)

func (t ShapeType) String() string {
	switch t {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	case ShapeTorus:
		return "torus"
	case ShapeCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

type Vec3 struct {
	X, Y, Z float32
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

func DefaultTransform() Transform {
	return Transform{
		Scale: Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Shape is an implicit primitive. Size is the primary dimension (radius,
// half-extent, major radius); Params carries per-type auxiliary values
// (e.g. torus tube radius in Params[0], cylinder height in Params[0]).
type Shape struct {
	Type   ShapeType
	Size   float32
	Params [4]float32
}

type Material struct {
	Albedo    Vec3
	Metallic  float32
	Roughness float32
	Emission  float32
}

type Light struct {
	Position  Vec3
	Color     Vec3
	Intensity float32
}
