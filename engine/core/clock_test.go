package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockLifecycle(t *testing.T) {
	c := NewClock()

	// Updating a clock that was never started does nothing.
	c.Update()
	assert.Equal(t, 0.0, c.Elapsed())

	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Update()
	elapsed := c.Elapsed()
	assert.Greater(t, elapsed, 0.0)

	// Elapsed is sampled at Update, not continuously.
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, elapsed, c.Elapsed())

	c.Stop()
	stopped := c.Elapsed()
	c.Update()
	assert.Equal(t, stopped, c.Elapsed())
}

func TestClockStartResetsElapsed(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.Greater(t, c.Elapsed(), 0.0)

	c.Start()
	assert.Equal(t, 0.0, c.Elapsed())
}
