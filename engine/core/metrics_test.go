package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSafeBeforeInitialize(t *testing.T) {
	saved := metricsState
	metricsState = nil
	defer func() { metricsState = saved }()

	assert.NotPanics(t, func() {
		MetricsFrameSubmitted()
		MetricsFrameDropped()
		MetricsSwapchainRecreated()
		MetricsUpdate(0.004)
	})

	fps, frameTime := MetricsFrame()
	assert.Zero(t, fps)
	assert.Zero(t, frameTime)
	assert.Zero(t, MetricsFPS())
	assert.Zero(t, MetricsFrameTime())
}

func TestMetricsFrameCounters(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	submitted := metricsState.SubmittedFrames
	dropped := metricsState.DroppedFrames
	recreates := metricsState.SwapchainRecreates

	MetricsFrameSubmitted()
	MetricsFrameSubmitted()
	MetricsFrameDropped()
	MetricsSwapchainRecreated()

	assert.Equal(t, submitted+2, metricsState.SubmittedFrames)
	assert.Equal(t, dropped+1, metricsState.DroppedFrames)
	assert.Equal(t, recreates+1, metricsState.SwapchainRecreates)
}

func TestMetricsUpdateAveragesFrameTimes(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	// Two full averaging windows of 4ms frames land the average near 4ms
	// regardless of where the window counter started.
	for i := 0; i < 2*int(avgCount); i++ {
		MetricsUpdate(0.004)
	}
	fps, frameTime := MetricsFrame()
	assert.InDelta(t, 4.0, frameTime, 1.0)
	assert.GreaterOrEqual(t, fps, 0.0)
}
