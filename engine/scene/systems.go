package scene

import (
	"github.com/chewxy/math32"
)

// Update advances the time-driven animation: the first light orbits the
// scene and non-plane shapes bob gently on the Y axis. elapsed is seconds
// since application start.
func (w *World) Update(elapsed float64) {
	t := float32(elapsed)

	if len(w.lights) > 0 {
		l := &w.lights[0]
		const radius float32 = 2.8
		l.Light.Position.X = radius * math32.Cos(t*0.5)
		l.Light.Position.Z = radius * math32.Sin(t*0.5)
	}

	for i := range w.shapes {
		s := &w.shapes[i]
		if s.Shape.Type == ShapePlane {
			continue
		}
		phase := float32(i) * 1.7
		s.Transform.Position.Y = 0.15 * math32.Sin(t*1.2+phase)
	}
}
