package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowgrove/marcher/engine/core"
	"github.com/hollowgrove/marcher/engine/renderer"
)

// stubBackend stands in for the Vulkan backend so the event plumbing can be
// exercised without a device or a window.
type stubBackend struct {
	recreates int
	begins    int
	ends      int
}

func (s *stubBackend) Initialize(appName string, w, h uint32) error { return nil }
func (s *stubBackend) Shutdown() error                              { return nil }
func (s *stubBackend) RecreateSwapchain(w, h uint32) error          { s.recreates++; return nil }
func (s *stubBackend) BeginFrame(packet *renderer.RenderPacket) error {
	s.begins++
	return nil
}
func (s *stubBackend) EndFrame(packet *renderer.RenderPacket) error {
	s.ends++
	return nil
}
func (s *stubBackend) ReloadShaders(path string) error       { return nil }
func (s *stubBackend) OverlayTarget() renderer.OverlayTarget { return renderer.OverlayTarget{} }

func TestRestoreToSameExtentResumesRendering(t *testing.T) {
	backend := &stubBackend{}
	r := renderer.New(backend)
	require.NoError(t, r.Initialize("test", 800, 600))

	a := &Application{renderer: r, width: 800, height: 600}

	a.onResized(core.EVENT_CODE_MINIMIZED, nil, a, core.EventContext{})
	rendered, err := r.DrawFrame(&renderer.RenderPacket{})
	require.NoError(t, err)
	assert.False(t, rendered, "no rendering while minimized")
	assert.Equal(t, 0, backend.begins)

	// Restore to the extent the window had before minimizing.
	restore := core.EventContext{}
	restore.Data.U32[0] = 800
	restore.Data.U32[1] = 600
	a.onResized(core.EVENT_CODE_RESTORED, nil, a, restore)

	rendered, err = r.DrawFrame(&renderer.RenderPacket{})
	require.NoError(t, err)
	assert.True(t, rendered, "restoring to the old extent must resume rendering")
	assert.Equal(t, 1, backend.recreates)
}
