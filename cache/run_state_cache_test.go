package cache

import (
	"testing"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/stretchr/testify/require"
)

func TestRunStateCache(t *testing.T) {
	ch := NewRunStateCache()

	_, found := ch.Get("user-1", "3")
	require.False(t, found)

	ch.Save("user-1", "3", model.RUN_STATE_ONGOING)
	state, found := ch.Get("user-1", "3")
	require.True(t, found)
	require.Equal(t, model.RUN_STATE_ONGOING, state)

	ch.Save("user-1", "3", model.RUN_STATE_DONE)
	state, found = ch.Get("user-1", "3")
	require.True(t, found)
	require.Equal(t, model.RUN_STATE_DONE, state)

	_, found = ch.Get("user-1", "1")
	require.False(t, found)
}
