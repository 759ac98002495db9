package renderer

import (
	vk "github.com/goki/vulkan"
)

// OverlayTarget describes the frame resources an external overlay pass (a
// HUD, for instance) needs to record its own commands: the negotiated
// swapchain format and extent, the render pass overlay pipelines must be
// compatible with and one framebuffer per swapchain image. The contents are
// invalidated by every swapchain recreation.
type OverlayTarget struct {
	Format       vk.Format
	Width        uint32
	Height       uint32
	RenderPass   vk.RenderPass
	Framebuffers []vk.Framebuffer
}

// RendererBackend is the device-facing half of the renderer. The front end
// owns the per-frame state machine and calls these steps in order; the
// backend owns devices, swapchains, pipelines and frame slots.
//
// BeginFrame and EndFrame return the transient sentinels from engine/core
// (ErrSwapchainOutOfDate, ErrSwapchainSuboptimal, ErrAcquireTimedOut,
// ErrSurfaceUnavailable) for conditions the front end recovers from. Any
// other error is fatal.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error

	// RecreateSwapchain rebuilds the swapchain at the given drawable extent.
	// A zero extent suspends the swapchain and returns ErrSurfaceUnavailable.
	RecreateSwapchain(width, height uint32) error

	// BeginFrame waits on the current frame slot's fence, acquires the next
	// swapchain image and opens the command buffer.
	BeginFrame(packet *RenderPacket) error

	// EndFrame records the full-screen pass, submits it and presents. The
	// frame slot advances regardless of the present outcome.
	EndFrame(packet *RenderPacket) error

	// ReloadShaders recompiles the shader set from path (built-ins when path
	// is empty) and rebuilds the pipeline. The swapchain is untouched.
	ReloadShaders(path string) error

	// OverlayTarget reports the current overlay recording surface.
	OverlayTarget() OverlayTarget
}
