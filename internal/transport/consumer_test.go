package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwru-rcci/metarootbus/internal/codec"
	"github.com/cwru-rcci/metarootbus/internal/result"
)

func TestConsumerHandleOneDispatchesDecodedRequest(t *testing.T) {
	var seen map[string]any
	c := &Consumer{handler: func(request map[string]any) result.Result {
		seen = request
		return result.OK(nil)
	}}

	body, err := codec.EncodeRequest(map[string]any{"action": "echo", "message": "hi"})
	require.NoError(t, err)

	shutdown := c.handleOne(body)
	assert.False(t, shutdown)
	assert.Equal(t, "echo", seen["action"])
	assert.Equal(t, "hi", seen["message"])
}

func TestConsumerHandleOneCloseImmediately(t *testing.T) {
	called := false
	c := &Consumer{handler: func(request map[string]any) result.Result {
		called = true
		return result.OK(nil)
	}}

	body, err := codec.EncodeRequest(codec.CloseImmediately{})
	require.NoError(t, err)

	shutdown := c.handleOne(body)
	assert.True(t, shutdown)
	assert.False(t, called, "handler must not be invoked for CLOSE_IMMEDIATELY")
}

func TestConsumerHandleOneMalformedMessage(t *testing.T) {
	called := false
	c := &Consumer{handler: func(request map[string]any) result.Result {
		called = true
		return result.OK(nil)
	}}

	shutdown := c.handleOne([]byte("not: [valid"))
	assert.False(t, shutdown)
	assert.False(t, called)
}

func TestConsumerDispatchSafelyRecoversPanic(t *testing.T) {
	c := &Consumer{handler: func(request map[string]any) result.Result {
		panic("boom")
	}}

	assert.NotPanics(t, func() {
		c.dispatchSafely(map[string]any{"action": "x"})
	})
}
