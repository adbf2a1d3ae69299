package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKAndErr(t *testing.T) {
	ok := OK("done")
	assert.True(t, ok.IsSuccess())
	assert.False(t, ok.IsError())

	failed := Err(452, "missing parameter")
	assert.False(t, failed.IsSuccess())
	assert.True(t, failed.IsError())
	assert.Equal(t, 452, failed.Status)
}

func TestToWire(t *testing.T) {
	r := Result{Status: 0, Response: map[string]any{"name": "g"}}
	wire := r.ToWire()
	assert.Equal(t, 0, wire["status"])
	assert.Equal(t, map[string]any{"name": "g"}, wire["response"])
}

func TestFromWireRoundTrip(t *testing.T) {
	cases := []Result{
		{Status: 0, Response: nil},
		{Status: 0, Response: "hello"},
		{Status: 470, Response: "write blocked"},
		{Status: 0, Response: []any{"a", "b"}},
		{Status: 0, Response: map[string]any{"Handler1": map[string]any{"status": 0, "response": nil}}},
	}

	for _, want := range cases {
		got, err := FromWire(want.ToWire())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFromWireMissingStatus(t *testing.T) {
	_, err := FromWire(map[string]any{"response": "x"})
	assert.Error(t, err)
}

func TestFromWireStatusTypes(t *testing.T) {
	for _, raw := range []any{int(7), int64(7), uint64(7), float64(7)} {
		got, err := FromWire(map[string]any{"status": raw, "response": nil})
		require.NoError(t, err)
		assert.Equal(t, 7, got.Status)
	}
}

func TestFromWireBadStatusType(t *testing.T) {
	_, err := FromWire(map[string]any{"status": "seven", "response": nil})
	assert.Error(t, err)
}
