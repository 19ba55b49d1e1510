package persistence

import (
	"testing"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/stretchr/testify/require"
)

func TestContextCodec(t *testing.T) {
	codec := NewContextCodec()

	bc := model.NewBotContext("user-1", "getUserQuestion", model.INPUT_TYPE_TEXT, "hi")
	bc.UserAadhaarNumber = "987654321012"
	data, err := codec.Encode(bc)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, bc, decoded)
}

func TestContextCodecStampsVersion(t *testing.T) {
	codec := NewContextCodec()

	bc := &model.BotContext{UserId: "user-1"}
	data, err := codec.Encode(bc)
	require.NoError(t, err)
	require.Equal(t, model.ContextSchemaVersion, bc.SchemaVersion)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, model.ContextSchemaVersion, decoded.SchemaVersion)
}

func TestContextCodecRejectsUnknownVersion(t *testing.T) {
	codec := NewContextCodec()

	_, err := codec.Decode([]byte(`{"schemaVersion":99,"userId":"user-1"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema version")

	_, err = codec.Decode([]byte(`{not json`))
	require.Error(t, err)
}
