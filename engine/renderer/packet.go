package renderer

import (
	"encoding/binary"
	"math"

	"github.com/hollowgrove/marcher/engine/scene"
)

// Scene capacity limits baked into the shader's uniform block.
const (
	MaxShapes = 16
	MaxLights = 4
)

// Byte sizes of the GPU-visible blocks. The push-constant block carries the
// per-frame header; the scene uniform block mirrors the header and appends
// the shape and light arrays in std140 layout.
const (
	PushConstantSize = 24
	sceneHeaderSize  = 32
	shapeStride      = 64
	lightStride      = 32
	SceneUniformSize = sceneHeaderSize + MaxShapes*shapeStride + MaxLights*lightStride
)

// RenderPacket is everything the renderer needs for one frame, passed by
// value from the application loop.
type RenderPacket struct {
	DeltaTime float64
	// Elapsed seconds since application start, drives shader animation.
	Time float64
	// Drawable extent the frame is rendered at.
	Width  uint32
	Height uint32
	Scene  scene.Snapshot
}

type packetWriter struct {
	buf []byte
	off int
}

func (w *packetWriter) f32(v float32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], math.Float32bits(v))
	w.off += 4
}

func (w *packetWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *packetWriter) vec4(x, y, z, wc float32) {
	w.f32(x)
	w.f32(y)
	w.f32(z)
	w.f32(wc)
}

func clampedCounts(p *RenderPacket) (int, int) {
	shapes := len(p.Scene.Shapes)
	if shapes > MaxShapes {
		shapes = MaxShapes
	}
	lights := len(p.Scene.Lights)
	if lights > MaxLights {
		lights = MaxLights
	}
	return shapes, lights
}

func writeHeader(w *packetWriter, p *RenderPacket, shapes, lights int) {
	w.f32(float32(p.Width))
	w.f32(float32(p.Height))
	w.f32(float32(p.Time))
	aspect := float32(1)
	if p.Height != 0 {
		aspect = float32(p.Width) / float32(p.Height)
	}
	w.f32(aspect)
	w.u32(uint32(shapes))
	w.u32(uint32(lights))
}

// EncodePushConstants serializes the 24-byte frame header: resolution,
// elapsed time, aspect ratio and the scene element counts.
func EncodePushConstants(p *RenderPacket) []byte {
	w := &packetWriter{buf: make([]byte, PushConstantSize)}
	shapes, lights := clampedCounts(p)
	writeHeader(w, p, shapes, lights)
	return w.buf
}

// EncodeSceneUniform serializes the full scene block uploaded to the
// per-frame uniform buffer. Shapes and lights beyond the capacity limits are
// dropped; the caller decides whether that deserves a warning.
func EncodeSceneUniform(p *RenderPacket) []byte {
	w := &packetWriter{buf: make([]byte, SceneUniformSize)}
	shapes, lights := clampedCounts(p)

	writeHeader(w, p, shapes, lights)
	w.u32(0)
	w.u32(0)

	for i := 0; i < shapes; i++ {
		s := &p.Scene.Shapes[i]
		w.vec4(s.Position.X, s.Position.Y, s.Position.Z, s.Size)
		w.vec4(s.Params[0], s.Params[1], s.Params[2], s.Params[3])
		w.vec4(s.Albedo.X, s.Albedo.Y, s.Albedo.Z, s.Metallic)
		w.vec4(s.Roughness, s.Emission, float32(s.Type), 0)
	}
	w.off = sceneHeaderSize + MaxShapes*shapeStride

	for i := 0; i < lights; i++ {
		l := &p.Scene.Lights[i]
		w.vec4(l.Position.X, l.Position.Y, l.Position.Z, l.Intensity)
		w.vec4(l.Color.X, l.Color.Y, l.Color.Z, 0)
	}

	return w.buf
}
