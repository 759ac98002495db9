package vulkan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitImageRetired(t *testing.T) {
	vr := &VulkanRenderer{
		options: Options{AcquireTimeout: time.Second},
		imagesInFlight: []*VulkanFence{
			nil,
			{IsSignaled: true},
		},
	}

	assert.True(t, vr.waitImageRetired(0), "an image with no prior submission needs no wait")
	assert.True(t, vr.waitImageRetired(1), "a retired submission returns immediately")
}
