package scene

import (
	"github.com/google/uuid"

	"github.com/hollowgrove/marcher/engine/core"
)

type shapeEntity struct {
	ID        uuid.UUID
	Shape     Shape
	Material  Material
	Transform Transform
}

type lightEntity struct {
	ID    uuid.UUID
	Light Light
}

// World is the component store for the implicit scene. It is owned and
// mutated by the application thread only.
type World struct {
	shapes []shapeEntity
	lights []lightEntity
}

func NewWorld() *World {
	return &World{}
}

func (w *World) AddShape(shape Shape, material Material, transform Transform) uuid.UUID {
	id := uuid.New()
	w.shapes = append(w.shapes, shapeEntity{
		ID:        id,
		Shape:     shape,
		Material:  material,
		Transform: transform,
	})
	core.LogDebug("added %s entity %s", shape.Type, id)
	return id
}

func (w *World) AddLight(light Light) uuid.UUID {
	id := uuid.New()
	w.lights = append(w.lights, lightEntity{ID: id, Light: light})
	core.LogDebug("added light entity %s", id)
	return id
}

func (w *World) Remove(id uuid.UUID) bool {
	for i, s := range w.shapes {
		if s.ID == id {
			w.shapes = append(w.shapes[:i], w.shapes[i+1:]...)
			return true
		}
	}
	for i, l := range w.lights {
		if l.ID == id {
			w.lights = append(w.lights[:i], w.lights[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) ShapeCount() int { return len(w.shapes) }
func (w *World) LightCount() int { return len(w.lights) }

// ShapeRecord is the renderer-facing view of one shape: transform already
// applied to the position, everything by value.
type ShapeRecord struct {
	Type      ShapeType
	Position  Vec3
	Size      float32
	Params    [4]float32
	Albedo    Vec3
	Metallic  float32
	Roughness float32
	Emission  float32
}

type LightRecord struct {
	Position  Vec3
	Color     Vec3
	Intensity float32
}

// Snapshot is a value copy of the scene handed to the renderer once per
// frame. The renderer never holds references into the world.
type Snapshot struct {
	Shapes []ShapeRecord
	Lights []LightRecord
}

func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Shapes: make([]ShapeRecord, 0, len(w.shapes)),
		Lights: make([]LightRecord, 0, len(w.lights)),
	}
	for _, s := range w.shapes {
		snap.Shapes = append(snap.Shapes, ShapeRecord{
			Type:      s.Shape.Type,
			Position:  s.Transform.Position,
			Size:      s.Shape.Size * s.Transform.Scale.X,
			Params:    s.Shape.Params,
			Albedo:    s.Material.Albedo,
			Metallic:  s.Material.Metallic,
			Roughness: s.Material.Roughness,
			Emission:  s.Material.Emission,
		})
	}
	for _, l := range w.lights {
		snap.Lights = append(snap.Lights, LightRecord{
			Position:  l.Light.Position,
			Color:     l.Light.Color,
			Intensity: l.Light.Intensity,
		})
	}
	return snap
}

// SeedDemoScene populates the default scene: a red sphere at the origin, a
// green box to the left, a blue sphere to the right, a ground plane and one
// white light.
func (w *World) SeedDemoScene() {
	w.AddShape(
		Shape{Type: ShapeSphere, Size: 0.5},
		Material{Albedo: NewVec3(1, 0, 0), Roughness: 0.5},
		Transform{Position: NewVec3(0, 0, 0), Scale: NewVec3(1, 1, 1)},
	)
	w.AddShape(
		Shape{Type: ShapeBox, Size: 0.3},
		Material{Albedo: NewVec3(0, 1, 0), Metallic: 0.1, Roughness: 0.7},
		Transform{Position: NewVec3(-1.5, 0, 0), Scale: NewVec3(1, 1, 1)},
	)
	w.AddShape(
		Shape{Type: ShapeSphere, Size: 0.4},
		Material{Albedo: NewVec3(0, 0, 1), Metallic: 0.3, Roughness: 0.3},
		Transform{Position: NewVec3(1.5, 0, 0), Scale: NewVec3(1, 1, 1)},
	)
	w.AddShape(
		Shape{Type: ShapePlane, Size: 1.0},
		Material{Albedo: NewVec3(0.8, 0.8, 0.8), Roughness: 0.9},
		Transform{Position: NewVec3(0, -0.75, 0), Scale: NewVec3(1, 1, 1)},
	)
	w.AddLight(Light{
		Position:  NewVec3(2, 2, 2),
		Color:     NewVec3(1, 1, 1),
		Intensity: 1.0,
	})
	core.LogInfo("seeded demo scene: %d shapes, %d lights", len(w.shapes), len(w.lights))
}
