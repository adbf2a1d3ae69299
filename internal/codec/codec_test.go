package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

func TestEncodeDecodeRequestRoundTrip(t *testing.T) {
	req := map[string]any{
		"action": "addGroup",
		"name":   "admins",
	}

	b, err := EncodeRequest(req)
	require.NoError(t, err)

	got, err := DecodeRequest(b)
	require.NoError(t, err)

	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "addGroup", m["action"])
	assert.Equal(t, "admins", m["name"])
}

func TestDecodeRequestCloseImmediately(t *testing.T) {
	b, err := EncodeRequest(CloseImmediately{})
	require.NoError(t, err)

	got, err := DecodeRequest(b)
	require.NoError(t, err)

	_, ok := got.(CloseImmediately)
	assert.True(t, ok)
}

func TestDecodeRequestMalformed(t *testing.T) {
	_, err := DecodeRequest([]byte("- this\n  is: [not, }, a, valid, mapping"))
	assert.Error(t, err)
}

func TestDecodeRequestNotAMapping(t *testing.T) {
	b, err := EncodeRequest([]any{"a", "b"})
	require.NoError(t, err)

	_, err = DecodeRequest(b)
	assert.Error(t, err)
}

func TestEncodeDecodeResultRoundTrip(t *testing.T) {
	r := result.Result{Status: 0, Response: map[string]any{"Handler1": map[string]any{"status": 0, "response": nil}}}

	b, err := EncodeResult(r)
	require.NoError(t, err)

	got, err := DecodeResult(b)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestDecodeResultMalformed(t *testing.T) {
	_, err := DecodeResult([]byte("not: [valid"))
	assert.Error(t, err)
}
