package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveEntities(t *testing.T) {
	w := NewWorld()

	sphereID := w.AddShape(
		Shape{Type: ShapeSphere, Size: 1.0},
		Material{Albedo: NewVec3(1, 0, 0)},
		DefaultTransform(),
	)
	lightID := w.AddLight(Light{Position: NewVec3(0, 5, 0), Intensity: 2.0})

	assert.Equal(t, 1, w.ShapeCount())
	assert.Equal(t, 1, w.LightCount())

	assert.True(t, w.Remove(sphereID))
	assert.Equal(t, 0, w.ShapeCount())

	assert.True(t, w.Remove(lightID))
	assert.Equal(t, 0, w.LightCount())

	// Removing an id twice fails quietly.
	assert.False(t, w.Remove(sphereID))
}

func TestSnapshotIsAValueCopy(t *testing.T) {
	w := NewWorld()
	w.AddShape(
		Shape{Type: ShapeBox, Size: 0.5},
		Material{Albedo: NewVec3(0, 1, 0), Roughness: 0.4},
		Transform{Position: NewVec3(1, 2, 3), Scale: NewVec3(1, 1, 1)},
	)

	snap := w.Snapshot()
	require.Len(t, snap.Shapes, 1)
	assert.Equal(t, ShapeBox, snap.Shapes[0].Type)
	assert.Equal(t, NewVec3(1, 2, 3), snap.Shapes[0].Position)

	// Mutating the world after the snapshot must not leak into it.
	w.Update(10.0)
	assert.Equal(t, float32(2), snap.Shapes[0].Position.Y)
}

func TestSnapshotAppliesScaleToSize(t *testing.T) {
	w := NewWorld()
	w.AddShape(
		Shape{Type: ShapeSphere, Size: 0.5},
		Material{},
		Transform{Scale: NewVec3(2, 2, 2)},
	)

	snap := w.Snapshot()
	require.Len(t, snap.Shapes, 1)
	assert.InDelta(t, 1.0, snap.Shapes[0].Size, 1e-6)
}

func TestSeedDemoScene(t *testing.T) {
	w := NewWorld()
	w.SeedDemoScene()

	assert.Equal(t, 4, w.ShapeCount())
	assert.Equal(t, 1, w.LightCount())

	snap := w.Snapshot()
	foundPlane := false
	for _, s := range snap.Shapes {
		if s.Type == ShapePlane {
			foundPlane = true
		}
	}
	assert.True(t, foundPlane, "demo scene should include a ground plane")
}

func TestUpdateAnimatesShapesAndLight(t *testing.T) {
	w := NewWorld()
	w.SeedDemoScene()

	before := w.Snapshot()
	w.Update(1.3)
	after := w.Snapshot()

	assert.NotEqual(t, before.Lights[0].Position, after.Lights[0].Position)

	// Non-plane shapes bob on Y, the plane stays put.
	for i := range after.Shapes {
		if after.Shapes[i].Type == ShapePlane {
			assert.Equal(t, before.Shapes[i].Position.Y, after.Shapes[i].Position.Y)
		} else {
			assert.NotEqual(t, before.Shapes[i].Position.Y, after.Shapes[i].Position.Y)
		}
	}
}
