package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRegisterFireUnregister(t *testing.T) {
	EventInitialize()

	listener := &struct{ name string }{"listener"}
	received := 0
	var gotWidth uint32

	callback := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		received++
		gotWidth = data.Data.U32[0]
		return true
	}

	require.True(t, EventRegister(EVENT_CODE_RESIZED, listener, callback))

	context := EventContext{}
	context.Data.U32[0] = 1024
	context.Data.U32[1] = 768
	assert.True(t, EventFire(EVENT_CODE_RESIZED, nil, context))
	assert.Equal(t, 1, received)
	assert.Equal(t, uint32(1024), gotWidth)

	require.True(t, EventUnregister(EVENT_CODE_RESIZED, listener, callback))
	assert.False(t, EventFire(EVENT_CODE_RESIZED, nil, context))
	assert.Equal(t, 1, received)
}

func TestEventDuplicateRegistrationRejected(t *testing.T) {
	EventInitialize()

	listener := &struct{ name string }{"dup"}
	callback := func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
		return false
	}

	require.True(t, EventRegister(EVENT_CODE_MINIMIZED, listener, callback))
	assert.False(t, EventRegister(EVENT_CODE_MINIMIZED, listener, callback))

	EventUnregister(EVENT_CODE_MINIMIZED, listener, callback)
}

func TestEventHandledStopsPropagation(t *testing.T) {
	EventInitialize()

	first := &struct{ name string }{"first"}
	second := &struct{ name string }{"second"}
	secondCalled := false

	require.True(t, EventRegister(EVENT_CODE_SHADER_CHANGED, first,
		func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
			return true
		}))
	require.True(t, EventRegister(EVENT_CODE_SHADER_CHANGED, second,
		func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool {
			secondCalled = true
			return false
		}))

	context := EventContext{}
	context.Data.C[0] = "shaders/raymarch.wgsl"
	assert.True(t, EventFire(EVENT_CODE_SHADER_CHANGED, nil, context))
	assert.False(t, secondCalled)

	EventUnregister(EVENT_CODE_SHADER_CHANGED, first, nil)
	EventUnregister(EVENT_CODE_SHADER_CHANGED, second, nil)
}

func TestEventFireWithNoListeners(t *testing.T) {
	EventInitialize()
	assert.False(t, EventFire(EVENT_CODE_RESTORED, nil, EventContext{}))
}
