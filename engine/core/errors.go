package core

import (
	"errors"
	"fmt"
)

// Process exit codes, one per initialization failure category. Transient
// per-frame conditions never reach process exit.
const (
	ExitOK       = 0
	ExitGeneric  = 1
	ExitSurface  = 2
	ExitDevice   = 3
	ExitShader   = 4
	ExitPipeline = 5
)

// Transient swapchain conditions. These are absorbed by the frame loop
// (recreate or drop the frame) and must never escape it.
var (
	ErrSwapchainOutOfDate  = errors.New("swapchain out of date")
	ErrSwapchainSuboptimal = errors.New("swapchain suboptimal")
	ErrAcquireTimedOut     = errors.New("swapchain image acquire timed out")
	// ErrSurfaceUnavailable is returned while the swapchain is suspended
	// (zero-sized drawable, i.e. minimized window).
	ErrSurfaceUnavailable = errors.New("surface unavailable")
)

// ErrUseAfterShutdown marks calls into a device context that has already been
// shut down. This is a programming error, not a runtime condition.
var ErrUseAfterShutdown = errors.New("use after shutdown")

// IsTransient reports whether err is a per-frame condition the frame loop
// recovers from locally.
func IsTransient(err error) bool {
	return errors.Is(err, ErrSwapchainOutOfDate) ||
		errors.Is(err, ErrSwapchainSuboptimal) ||
		errors.Is(err, ErrAcquireTimedOut) ||
		errors.Is(err, ErrSurfaceUnavailable)
}

// DeviceInitError covers instance, adapter, device and surface setup
// failures. Always fatal.
type DeviceInitError struct {
	Stage string
	Err   error
}

func (e *DeviceInitError) Error() string {
	return fmt.Sprintf("device initialization failed at %s: %v", e.Stage, e.Err)
}

func (e *DeviceInitError) Unwrap() error { return e.Err }

// ShaderCompileError carries the toolchain diagnostic verbatim.
type ShaderCompileError struct {
	Name       string
	Diagnostic string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("shader %q failed to compile: %s", e.Name, e.Diagnostic)
}

// PipelineBuildError indicates a format or layout mismatch during pipeline
// construction. Fatal: it means format negotiation went wrong.
type PipelineBuildError struct {
	Reason string
	Err    error
}

func (e *PipelineBuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline build failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pipeline build failed: %s", e.Reason)
}

func (e *PipelineBuildError) Unwrap() error { return e.Err }

// ExitCodeFor maps an initialization error to its process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		devErr      *DeviceInitError
		shaderErr   *ShaderCompileError
		pipelineErr *PipelineBuildError
	)
	switch {
	case errors.As(err, &shaderErr):
		return ExitShader
	case errors.As(err, &pipelineErr):
		return ExitPipeline
	case errors.As(err, &devErr):
		if devErr.Stage == "surface" || devErr.Stage == "window" {
			return ExitSurface
		}
		return ExitDevice
	default:
		return ExitGeneric
	}
}
