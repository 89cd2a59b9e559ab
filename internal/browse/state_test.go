package browse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchState_Reduce(t *testing.T) {
	var s FetchState[[]string]
	assert.Equal(t, StatusIdle, s.Status)

	s = s.Reduce(FetchStarted[[]string]{})
	assert.True(t, s.Loading())

	s = s.Reduce(FetchSucceeded[[]string]{Value: []string{"a"}})
	assert.True(t, s.Ready())
	assert.Equal(t, []string{"a"}, s.Value)

	s = s.Reduce(FetchStarted[[]string]{})
	assert.True(t, s.Loading())
	assert.Equal(t, []string{"a"}, s.Value, "value survives a refetch")

	boom := errors.New("boom")
	s = s.Reduce(FetchFailed[[]string]{Err: boom})
	assert.True(t, s.Failed())
	assert.Equal(t, boom, s.Err)
	assert.Equal(t, []string{"a"}, s.Value, "last known good is kept on failure")

	s = s.Reduce(FetchStarted[[]string]{})
	assert.NoError(t, s.Err)

	assert.Equal(t, s, s.Reduce(nil))
}

func TestFetchStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
