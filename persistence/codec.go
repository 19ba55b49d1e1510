package persistence

import (
	"fmt"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/AgrI-Mitra/bff/util"
)

// ContextCodec serializes BotContext at the store boundary and enforces
// the schema version: a blob written by an unknown schema fails loudly
// instead of flowing into a run half-understood.
type ContextCodec struct {
	encDec util.EncoderDecoder[model.BotContext]
}

func NewContextCodec() *ContextCodec {
	return &ContextCodec{encDec: util.NewJsonEncoderDecoder[model.BotContext]()}
}

func (c *ContextCodec) Encode(bc *model.BotContext) ([]byte, error) {
	if bc.SchemaVersion == 0 {
		bc.SchemaVersion = model.ContextSchemaVersion
	}
	return c.encDec.Encode(*bc)
}

func (c *ContextCodec) Decode(data []byte) (*model.BotContext, error) {
	bc, err := c.encDec.Decode(data)
	if err != nil {
		return nil, err
	}
	if bc.SchemaVersion != model.ContextSchemaVersion {
		return nil, fmt.Errorf("unsupported context schema version %d, expected %d",
			bc.SchemaVersion, model.ContextSchemaVersion)
	}
	return bc, nil
}
