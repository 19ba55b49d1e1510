package redis

import (
	"testing"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestRedisConversationStore(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, store *redisConversationStore,
	){
		"save and load":             testSaveLoad,
		"load missing conversation": testLoadMissing,
		"save overwrites":           testSaveOverwrites,
		"conversations are per key": testPerKeyIsolation,
	} {
		t.Run(scenario, func(t *testing.T) {
			srv := miniredis.RunT(t)
			conf := Config{
				Addrs:     []string{srv.Addr()},
				Namespace: "test",
			}
			store := NewRedisConversationStore(conf)

			fn(t, store)
		})
	}
}

func testSaveLoad(t *testing.T, store *redisConversationStore) {
	bc := model.NewBotContext("user-1", "getUserQuestion", model.INPUT_TYPE_TEXT, "en")
	bc.Query = "when is my next installment"
	bc.Type = model.TYPE_PAUSE

	err := store.Save("user-1", "3", bc, model.RUN_STATE_ONGOING)
	require.NoError(t, err)

	loaded, err := store.Load("user-1", "3")
	require.NoError(t, err)
	require.Equal(t, bc, loaded)
}

func testLoadMissing(t *testing.T, store *redisConversationStore) {
	loaded, err := store.Load("nobody", "3")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func testSaveOverwrites(t *testing.T, store *redisConversationStore) {
	bc := model.NewBotContext("user-1", "getUserQuestion", model.INPUT_TYPE_TEXT, "en")
	require.NoError(t, store.Save("user-1", "3", bc, model.RUN_STATE_ONGOING))

	bc.CurrentState = "askingOTP"
	bc.State = model.RUN_STATE_DONE
	require.NoError(t, store.Save("user-1", "3", bc, model.RUN_STATE_DONE))

	loaded, err := store.Load("user-1", "3")
	require.NoError(t, err)
	require.Equal(t, "askingOTP", loaded.CurrentState)
	require.True(t, loaded.IsDone())
}

func testPerKeyIsolation(t *testing.T, store *redisConversationStore) {
	bc := model.NewBotContext("user-1", "getUserQuestion", model.INPUT_TYPE_TEXT, "en")
	require.NoError(t, store.Save("user-1", "3", bc, model.RUN_STATE_ONGOING))

	loaded, err := store.Load("user-1", "1")
	require.NoError(t, err)
	require.Nil(t, loaded)

	loaded, err = store.Load("user-2", "3")
	require.NoError(t, err)
	require.Nil(t, loaded)
}
