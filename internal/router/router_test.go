package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwru-rcci/metarootbus/internal/activity"
	"github.com/cwru-rcci/metarootbus/internal/dispatch"
	"github.com/cwru-rcci/metarootbus/internal/reactions"
	"github.com/cwru-rcci/metarootbus/internal/result"
)

func newTestRouter(t *testing.T, hooks []string, readOnly bool) *Router {
	t.Helper()
	r, err := New(hooks, activity.Null{}, reactions.Noop{}, readOnly)
	require.NoError(t, err)
	return r
}

func TestHappyPathFanOut(t *testing.T) {
	r := newTestRouter(t, []string{"NoopManager", "NoopManager"}, false)

	res := r.AddGroup(map[string]any{"name": "g"}, "any")

	assert.Equal(t, 0, res.Status)
	responses, ok := res.Response.(map[string]any)
	require.True(t, ok)
	assert.Len(t, responses, 1, "both NoopManager instances share the same ClassName key")
}

func TestReadOnlyGateBlocksWrites(t *testing.T) {
	r := newTestRouter(t, []string{"NoopManager"}, true)

	res := r.AddGroup(map[string]any{"name": "g"}, "any")

	assert.Equal(t, 470, res.Status)
	assert.Equal(t, "Read-only operation is enabled, but write operation requested", res.Response)
}

func TestReadOnlyGateAllowsReads(t *testing.T) {
	r := newTestRouter(t, []string{"NoopManager"}, true)

	res := r.GetGroup("g", "any")
	assert.Equal(t, 0, res.Status)
}

func TestTargetedFanOut(t *testing.T) {
	r, err := New([]string{"NoopManager", "FailingManager"}, activity.Null{}, reactions.Noop{}, false)
	require.NoError(t, err)

	res := r.AddGroup(map[string]any{"name": "g"}, []any{"FailingManager"})

	assert.Equal(t, 500, res.Status)
	responses, ok := res.Response.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, responses, "FailingManager")
	assert.NotContains(t, responses, "NoopManager")
}

func TestAggregateStatusIsSumOfPerManagerStatuses(t *testing.T) {
	r, err := New([]string{"FailingManager", "FailingManager"}, activity.Null{}, reactions.Noop{}, false)
	require.NoError(t, err)

	res := r.AddGroup(map[string]any{"name": "g"}, "any")
	assert.Equal(t, 1000, res.Status, "both FailingManager statuses are summed even though they key into the same response entry")
}

func TestNewFailsWhenHookUnregistered(t *testing.T) {
	_, err := New([]string{"NoopManager", "NoSuchManager"}, activity.Null{}, reactions.Noop{}, false)
	assert.Error(t, err)
}

func TestFinalizeCallsEveryManager(t *testing.T) {
	r := newTestRouter(t, []string{"NoopManager", "FailingManager"}, false)
	assert.NoError(t, r.Finalize())
}

func TestDispatchRegistryServesRouterAsHandler(t *testing.T) {
	r := newTestRouter(t, []string{"NoopManager"}, false)
	reg := r.Registry()

	res := dispatch.Dispatch(reg, map[string]any{"action": "addGroup", "group_atts": map[string]any{"name": "g"}})
	assert.Equal(t, 0, res.Status)

	res = dispatch.Dispatch(reg, map[string]any{"action": "addGroup"})
	assert.Equal(t, 452, res.Status, "missing group_atts is caught by dispatch's declared-parameter validation")
}

func TestReactionsPriorCountThreadsAcrossManagers(t *testing.T) {
	fired := []int{}
	fake := fakeReactions{onFire: func(priorCount int) int {
		fired = append(fired, priorCount)
		return 1
	}}

	r, err := New([]string{"FailingManager", "FailingManager"}, activity.Null{}, fake, false)
	require.NoError(t, err)

	r.AddGroup(map[string]any{"name": "g"}, "any")
	require.Len(t, fired, 2)
	assert.Equal(t, 0, fired[0])
	assert.Equal(t, 1, fired[1])
}

type fakeReactions struct {
	onFire func(priorCount int) int
}

func (f fakeReactions) OccurInResponseTo(class, action string, payload any, res result.Result, priorCount int) int {
	return f.onFire(priorCount)
}
