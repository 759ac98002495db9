package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowgrove/marcher/engine/scene"
)

func f32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func u32At(t *testing.T, buf []byte, offset int) uint32 {
	t.Helper()
	return binary.LittleEndian.Uint32(buf[offset:])
}

func testPacket() *RenderPacket {
	return &RenderPacket{
		Time:   2.5,
		Width:  800,
		Height: 600,
		Scene: scene.Snapshot{
			Shapes: []scene.ShapeRecord{
				{
					Type:      scene.ShapeBox,
					Position:  scene.NewVec3(1, 2, 3),
					Size:      0.5,
					Params:    [4]float32{0.25, 0, 0, 0},
					Albedo:    scene.NewVec3(0.9, 0.1, 0.2),
					Metallic:  0.3,
					Roughness: 0.7,
					Emission:  0.1,
				},
			},
			Lights: []scene.LightRecord{
				{Position: scene.NewVec3(2, 2, 2), Color: scene.NewVec3(1, 1, 1), Intensity: 1.5},
			},
		},
	}
}

func TestEncodePushConstants(t *testing.T) {
	buf := EncodePushConstants(testPacket())
	require.Len(t, buf, PushConstantSize)

	assert.Equal(t, float32(800), f32At(t, buf, 0))
	assert.Equal(t, float32(600), f32At(t, buf, 4))
	assert.Equal(t, float32(2.5), f32At(t, buf, 8))
	assert.InDelta(t, float32(800)/float32(600), f32At(t, buf, 12), 1e-6)
	assert.Equal(t, uint32(1), u32At(t, buf, 16))
	assert.Equal(t, uint32(1), u32At(t, buf, 20))
}

func TestEncodeSceneUniformLayout(t *testing.T) {
	buf := EncodeSceneUniform(testPacket())
	require.Len(t, buf, SceneUniformSize)

	// Header mirrors the push constants plus std140 padding.
	assert.Equal(t, float32(800), f32At(t, buf, 0))
	assert.Equal(t, uint32(1), u32At(t, buf, 16))

	// First shape starts right after the 32-byte header.
	shape := sceneHeaderSize
	assert.Equal(t, float32(1), f32At(t, buf, shape))
	assert.Equal(t, float32(2), f32At(t, buf, shape+4))
	assert.Equal(t, float32(3), f32At(t, buf, shape+8))
	assert.Equal(t, float32(0.5), f32At(t, buf, shape+12))
	assert.Equal(t, float32(0.25), f32At(t, buf, shape+16))
	assert.Equal(t, float32(0.9), f32At(t, buf, shape+32))
	assert.Equal(t, float32(0.3), f32At(t, buf, shape+44))
	assert.Equal(t, float32(0.7), f32At(t, buf, shape+48))
	assert.Equal(t, float32(0.1), f32At(t, buf, shape+52))
	assert.Equal(t, float32(scene.ShapeBox), f32At(t, buf, shape+56))

	// Lights start after the full shape array regardless of shape count.
	light := sceneHeaderSize + MaxShapes*shapeStride
	assert.Equal(t, float32(2), f32At(t, buf, light))
	assert.Equal(t, float32(1.5), f32At(t, buf, light+12))
	assert.Equal(t, float32(1), f32At(t, buf, light+16))
}

func TestEncodeTruncatesOverfullScene(t *testing.T) {
	packet := testPacket()
	for i := 0; i < MaxShapes+5; i++ {
		packet.Scene.Shapes = append(packet.Scene.Shapes, scene.ShapeRecord{Type: scene.ShapeSphere})
	}
	for i := 0; i < MaxLights+2; i++ {
		packet.Scene.Lights = append(packet.Scene.Lights, scene.LightRecord{})
	}

	buf := EncodeSceneUniform(packet)
	assert.Equal(t, uint32(MaxShapes), u32At(t, buf, 16))
	assert.Equal(t, uint32(MaxLights), u32At(t, buf, 20))
	assert.Len(t, buf, SceneUniformSize)
}

func TestEncodeZeroHeightAspectFallback(t *testing.T) {
	packet := testPacket()
	packet.Height = 0
	buf := EncodePushConstants(packet)
	assert.Equal(t, float32(1), f32At(t, buf, 12))
}
