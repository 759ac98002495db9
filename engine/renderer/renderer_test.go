package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowgrove/marcher/engine/core"
)

type extent struct {
	width  uint32
	height uint32
}

// fakeBackend records the call sequence and plays back queued errors so the
// frame state machine can be exercised without a device.
type fakeBackend struct {
	initialized bool
	shutdowns   int
	recreates   []extent
	beginCalls  int
	endCalls    int
	reloads     []string

	beginErrs   []error
	endErrs     []error
	recreateErr error
	reloadErr   error

	overlay OverlayTarget
}

func (f *fakeBackend) Initialize(appName string, w, h uint32) error {
	f.initialized = true
	return nil
}

func (f *fakeBackend) Shutdown() error {
	f.shutdowns++
	return nil
}

func (f *fakeBackend) RecreateSwapchain(w, h uint32) error {
	if f.recreateErr != nil {
		return f.recreateErr
	}
	f.recreates = append(f.recreates, extent{w, h})
	return nil
}

func (f *fakeBackend) BeginFrame(packet *RenderPacket) error {
	f.beginCalls++
	if len(f.beginErrs) > 0 {
		err := f.beginErrs[0]
		f.beginErrs = f.beginErrs[1:]
		return err
	}
	return nil
}

func (f *fakeBackend) EndFrame(packet *RenderPacket) error {
	f.endCalls++
	if len(f.endErrs) > 0 {
		err := f.endErrs[0]
		f.endErrs = f.endErrs[1:]
		return err
	}
	return nil
}

func (f *fakeBackend) ReloadShaders(path string) error {
	f.reloads = append(f.reloads, path)
	return f.reloadErr
}

func (f *fakeBackend) OverlayTarget() OverlayTarget {
	return f.overlay
}

func newTestRenderer(t *testing.T) (*Renderer, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	r := New(backend)
	require.NoError(t, r.Initialize("test", 800, 600))
	return r, backend
}

func drawOne(t *testing.T, r *Renderer) bool {
	t.Helper()
	packet := &RenderPacket{}
	rendered, err := r.DrawFrame(packet)
	require.NoError(t, err)
	return rendered
}

func TestDrawFrameSteadyState(t *testing.T) {
	r, backend := newTestRenderer(t)

	for i := 0; i < 120; i++ {
		assert.True(t, drawOne(t, r))
	}
	assert.Equal(t, 120, backend.beginCalls)
	assert.Equal(t, 120, backend.endCalls)
	assert.Empty(t, backend.recreates)
}

func TestMinimizeSuspendsAndRestoreResumes(t *testing.T) {
	r, backend := newTestRenderer(t)

	r.OnResize(0, 0)
	for i := 0; i < 5; i++ {
		assert.False(t, drawOne(t, r))
	}
	// No device work while suspended.
	assert.Equal(t, 0, backend.beginCalls)
	assert.Empty(t, backend.recreates)

	r.OnResize(1024, 768)
	assert.True(t, drawOne(t, r), "the recreation frame still renders")

	require.Len(t, backend.recreates, 1)
	assert.Equal(t, extent{1024, 768}, backend.recreates[0])
}

func TestResizeBurstCoalescesToOneRecreation(t *testing.T) {
	r, backend := newTestRenderer(t)

	for w := uint32(801); w <= 1024; w++ {
		r.OnResize(w, 768)
	}
	assert.True(t, drawOne(t, r))
	assert.True(t, drawOne(t, r))

	require.Len(t, backend.recreates, 1)
	assert.Equal(t, extent{1024, 768}, backend.recreates[0])
}

func TestResizePacketCarriesNewExtent(t *testing.T) {
	r, _ := newTestRenderer(t)

	r.OnResize(1024, 768)

	packet := &RenderPacket{}
	rendered, err := r.DrawFrame(packet)
	require.NoError(t, err)
	require.True(t, rendered)
	assert.Equal(t, uint32(1024), packet.Width)
	assert.Equal(t, uint32(768), packet.Height)
}

func TestOutOfDateAtAcquireRecreatesAndRetries(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.beginErrs = []error{core.ErrSwapchainOutOfDate}

	assert.True(t, drawOne(t, r))
	assert.Equal(t, 2, backend.beginCalls)
	assert.Equal(t, 1, backend.endCalls)
	require.Len(t, backend.recreates, 1)
	assert.Equal(t, extent{800, 600}, backend.recreates[0])
}

func TestPersistentOutOfDateDropsFrame(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.beginErrs = []error{core.ErrSwapchainOutOfDate, core.ErrSwapchainOutOfDate}

	assert.False(t, drawOne(t, r))
	assert.Equal(t, 2, backend.beginCalls, "exactly one retry")
	assert.Equal(t, 0, backend.endCalls)
}

func TestAcquireTimeoutRecreatesLikeOutOfDate(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.beginErrs = []error{core.ErrAcquireTimedOut}

	assert.True(t, drawOne(t, r))
	assert.Equal(t, 2, backend.beginCalls)
	require.Len(t, backend.recreates, 1)
}

func TestSuboptimalAtPresentDefersRecreation(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.endErrs = []error{core.ErrSwapchainSuboptimal}

	// The frame still counts as submitted.
	assert.True(t, drawOne(t, r))
	assert.Empty(t, backend.recreates)

	// Recreation happens at the top of the next frame, which still renders.
	assert.True(t, drawOne(t, r))
	require.Len(t, backend.recreates, 1)
	assert.Equal(t, 2, backend.endCalls)
}

func TestFatalBackendErrorPropagates(t *testing.T) {
	r, backend := newTestRenderer(t)
	fatal := errors.New("device lost")
	backend.beginErrs = []error{fatal}

	_, err := r.DrawFrame(&RenderPacket{})
	assert.ErrorIs(t, err, fatal)
}

func TestReloadShadersSwallowsCompileErrors(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.reloadErr = &core.ShaderCompileError{Name: "raymarch", Diagnostic: "syntax error"}

	assert.NoError(t, r.ReloadShaders("shaders/raymarch.wgsl"))
	assert.Equal(t, []string{"shaders/raymarch.wgsl"}, backend.reloads)

	backend.reloadErr = errors.New("device lost")
	assert.Error(t, r.ReloadShaders(""))
}

func TestOverlayTargetComesFromBackend(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.overlay = OverlayTarget{Width: 800, Height: 600}

	target := r.OverlayTarget()
	assert.Equal(t, uint32(800), target.Width)
	assert.Equal(t, uint32(600), target.Height)
}
