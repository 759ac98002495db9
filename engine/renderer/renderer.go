package renderer

import (
	"errors"

	"github.com/hollowgrove/marcher/engine/core"
)

// Renderer is the front end of the rendering system. It owns the per-frame
// state machine (resize coalescing, swapchain recreation, frame drops) and
// drives a RendererBackend through it. All methods must be called from the
// application thread.
type Renderer struct {
	backend RendererBackend

	width  uint32
	height uint32

	// Resize events bump sizeGeneration; the frame loop catches up to the
	// latest value, so a burst of resizes costs one recreation.
	sizeGeneration     uint64
	lastSizeGeneration uint64
	pendingWidth       uint32
	pendingHeight      uint32

	// Set when present reports the swapchain stale; consumed at the top of
	// the next frame.
	recreatePending bool

	// True while the drawable extent is zero. Frames are dropped without
	// touching the backend until a non-zero resize arrives.
	suspended bool

	truncatedShapes int
	truncatedLights int
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, width, height uint32) error {
	r.width = width
	r.height = height
	r.pendingWidth = width
	r.pendingHeight = height
	return r.backend.Initialize(appName, width, height)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

// OnResize records a new drawable extent. Cheap to call at any rate; the
// next DrawFrame consumes only the latest value.
func (r *Renderer) OnResize(width, height uint32) {
	r.pendingWidth = width
	r.pendingHeight = height
	r.sizeGeneration++
}

// ReloadShaders recompiles the shader set and swaps the pipeline. A compile
// failure is logged and the previous pipeline stays active; anything else is
// fatal.
func (r *Renderer) ReloadShaders(path string) error {
	err := r.backend.ReloadShaders(path)
	if err == nil {
		return nil
	}
	var compileErr *core.ShaderCompileError
	if errors.As(err, &compileErr) {
		core.LogWarn("shader reload rejected, keeping previous pipeline: %s", compileErr)
		return nil
	}
	return err
}

// OverlayTarget reports the resources an external overlay pass records
// against. Callers must re-query it after any frame that recreated the
// swapchain.
func (r *Renderer) OverlayTarget() OverlayTarget {
	return r.backend.OverlayTarget()
}

// DrawFrame renders one frame. A false return with nil error means the frame
// was dropped (minimized window, stale swapchain mid-recreation); the caller
// simply continues the loop. A non-nil error is fatal.
func (r *Renderer) DrawFrame(packet *RenderPacket) (bool, error) {
	ok, err := r.syncSwapchain()
	if err != nil {
		return false, err
	}
	if !ok {
		core.MetricsFrameDropped()
		return false, nil
	}

	packet.Width = r.width
	packet.Height = r.height
	r.warnOnTruncation(packet)

	if ok, err := r.beginFrame(packet); !ok {
		if err != nil {
			return false, err
		}
		core.MetricsFrameDropped()
		return false, nil
	}

	if err := r.backend.EndFrame(packet); err != nil {
		if errors.Is(err, core.ErrSwapchainOutOfDate) || errors.Is(err, core.ErrSwapchainSuboptimal) {
			// The image was submitted; only the present target is stale.
			// Recreate before the next frame instead of mid-frame.
			core.LogDebug("present reported stale swapchain, recreating next frame")
			r.recreatePending = true
		} else {
			return false, err
		}
	}

	core.MetricsFrameSubmitted()
	return true, nil
}

// syncSwapchain brings the swapchain up to date with the latest resize and
// any deferred recreation. A false return with nil error means the frame
// must be dropped.
func (r *Renderer) syncSwapchain() (bool, error) {
	if r.sizeGeneration == r.lastSizeGeneration && !r.recreatePending && !r.suspended {
		return true, nil
	}

	if r.suspended && r.sizeGeneration == r.lastSizeGeneration {
		return false, nil
	}

	width, height := r.pendingWidth, r.pendingHeight
	r.lastSizeGeneration = r.sizeGeneration
	r.recreatePending = false

	if width == 0 || height == 0 {
		if !r.suspended {
			core.LogInfo("drawable extent is zero, suspending rendering")
		}
		r.suspended = true
		return false, nil
	}

	if err := r.backend.RecreateSwapchain(width, height); err != nil {
		if errors.Is(err, core.ErrSurfaceUnavailable) {
			r.suspended = true
			return false, nil
		}
		return false, err
	}

	if r.suspended {
		core.LogInfo("drawable extent restored to %dx%d, resuming rendering", width, height)
	}
	r.suspended = false
	r.width = width
	r.height = height
	core.MetricsSwapchainRecreated()
	return true, nil
}

// beginFrame opens the frame on the backend, recreating the swapchain and
// retrying once if the acquire reports it out of date.
func (r *Renderer) beginFrame(packet *RenderPacket) (bool, error) {
	for attempt := 0; ; attempt++ {
		err := r.backend.BeginFrame(packet)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, core.ErrSwapchainOutOfDate), errors.Is(err, core.ErrAcquireTimedOut):
			// A timed-out acquire gets the same treatment as out of date:
			// the swapchain may be wedged, so rebuild it.
			if attempt > 0 {
				core.LogWarn("swapchain still unusable after recreation, dropping frame")
				return false, nil
			}
			core.LogDebug("acquire failed (%s), recreating swapchain", err)
			if recreateErr := r.backend.RecreateSwapchain(r.width, r.height); recreateErr != nil {
				if errors.Is(recreateErr, core.ErrSurfaceUnavailable) {
					r.suspended = true
					return false, nil
				}
				return false, recreateErr
			}
			core.MetricsSwapchainRecreated()
		case errors.Is(err, core.ErrSurfaceUnavailable):
			r.suspended = true
			return false, nil
		default:
			return false, err
		}
	}
}

func (r *Renderer) warnOnTruncation(packet *RenderPacket) {
	if n := len(packet.Scene.Shapes); n > MaxShapes && n != r.truncatedShapes {
		core.LogWarn("scene has %d shapes, rendering first %d", n, MaxShapes)
		r.truncatedShapes = n
	}
	if n := len(packet.Scene.Lights); n > MaxLights && n != r.truncatedLights {
		core.LogWarn("scene has %d lights, rendering first %d", n, MaxLights)
		r.truncatedLights = n
	}
}
