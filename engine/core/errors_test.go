package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(ErrSwapchainOutOfDate))
	assert.True(t, IsTransient(ErrSwapchainSuboptimal))
	assert.True(t, IsTransient(ErrAcquireTimedOut))
	assert.True(t, IsTransient(ErrSurfaceUnavailable))

	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(errors.New("device lost")))
	assert.False(t, IsTransient(&DeviceInitError{Stage: "device", Err: errors.New("boom")}))
}

func TestIsTransientSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("acquire: %w", ErrSwapchainOutOfDate)
	assert.True(t, IsTransient(wrapped))
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("anything"), ExitGeneric},
		{"device", &DeviceInitError{Stage: "device", Err: errors.New("no gpu")}, ExitDevice},
		{"adapter", &DeviceInitError{Stage: "adapter", Err: errors.New("no gpu")}, ExitDevice},
		{"surface", &DeviceInitError{Stage: "surface", Err: errors.New("no display")}, ExitSurface},
		{"window", &DeviceInitError{Stage: "window", Err: errors.New("no display")}, ExitSurface},
		{"shader", &ShaderCompileError{Name: "raymarch", Diagnostic: "syntax error"}, ExitShader},
		{"pipeline", &PipelineBuildError{Reason: "graphics pipeline"}, ExitPipeline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestExitCodeForWrappedErrors(t *testing.T) {
	err := fmt.Errorf("startup: %w", &DeviceInitError{Stage: "surface", Err: errors.New("lost")})
	assert.Equal(t, ExitSurface, ExitCodeFor(err))
}

func TestDeviceInitErrorUnwrap(t *testing.T) {
	inner := errors.New("vkCreateDevice failed")
	err := &DeviceInitError{Stage: "device", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "device")
}

func TestShaderCompileErrorMessage(t *testing.T) {
	err := &ShaderCompileError{Name: "raymarch", Diagnostic: "unexpected token"}
	assert.Contains(t, err.Error(), "raymarch")
	assert.Contains(t, err.Error(), "unexpected token")
}
