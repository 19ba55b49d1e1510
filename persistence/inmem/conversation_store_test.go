package inmem

import (
	"testing"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/stretchr/testify/require"
)

func TestInMemConversationStore(t *testing.T) {
	store := NewInMemConversationStore()

	loaded, err := store.Load("user-1", "3")
	require.NoError(t, err)
	require.Nil(t, loaded)

	bc := model.NewBotContext("user-1", "getUserQuestion", model.INPUT_TYPE_TEXT, "en")
	bc.Query = "where is my installment"
	require.NoError(t, store.Save("user-1", "3", bc, model.RUN_STATE_ONGOING))

	loaded, err = store.Load("user-1", "3")
	require.NoError(t, err)
	require.Equal(t, bc, loaded)

	// Loads hand back a decoded copy; mutating it must not leak into the
	// stored blob.
	loaded.Query = "changed"
	again, err := store.Load("user-1", "3")
	require.NoError(t, err)
	require.Equal(t, "where is my installment", again.Query)
}
