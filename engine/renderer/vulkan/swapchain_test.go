package vulkan

import (
	"math"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
)

func TestChooseSurfaceFormatPrefersBGRA8Unorm(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, chosen.Format)
	assert.Equal(t, vk.ColorSpaceSrgbNonlinear, chosen.ColorSpace)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatR8g8b8a8Srgb, chosen.Format)
}

func TestChoosePresentModePreference(t *testing.T) {
	tests := []struct {
		name  string
		modes []vk.PresentMode
		want  vk.PresentMode
	}{
		{
			name:  "mailbox wins",
			modes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeFifoRelaxed, vk.PresentModeMailbox},
			want:  vk.PresentModeMailbox,
		},
		{
			name:  "fifo relaxed over fifo",
			modes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeFifoRelaxed},
			want:  vk.PresentModeFifoRelaxed,
		},
		{
			name:  "fifo fallback",
			modes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate},
			want:  vk.PresentModeFifo,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, choosePresentMode(tt.modes))
		})
	}
}

func TestChooseExtentUsesCurrentWhenFixed(t *testing.T) {
	capabilities := &vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 1280, Height: 720},
	}
	extent := chooseExtent(capabilities, 800, 600)
	assert.Equal(t, uint32(1280), extent.Width)
	assert.Equal(t, uint32(720), extent.Height)
}

func TestChooseExtentClampsWhenFlexible(t *testing.T) {
	capabilities := &vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: math.MaxUint32, Height: math.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 2048, Height: 2048},
	}

	extent := chooseExtent(capabilities, 4000, 32)
	assert.Equal(t, uint32(2048), extent.Width)
	assert.Equal(t, uint32(64), extent.Height)

	extent = chooseExtent(capabilities, 800, 600)
	assert.Equal(t, uint32(800), extent.Width)
	assert.Equal(t, uint32(600), extent.Height)
}

func TestChooseImageCount(t *testing.T) {
	capabilities := &vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 8}
	assert.Equal(t, uint32(3), chooseImageCount(capabilities))

	capabilities = &vk.SurfaceCapabilities{MinImageCount: 3, MaxImageCount: 3}
	assert.Equal(t, uint32(3), chooseImageCount(capabilities))

	// MaxImageCount of zero means no limit.
	capabilities = &vk.SurfaceCapabilities{MinImageCount: 4, MaxImageCount: 0}
	assert.Equal(t, uint32(5), chooseImageCount(capabilities))
}
