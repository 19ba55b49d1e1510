package persistence

import (
	"fmt"

	"github.com/AgrI-Mitra/bff/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

// ConversationStore is the sole cross-request continuity mechanism: one
// record per (userId, flowId), last write wins. Load returns (nil, nil)
// when no record exists; the caller then builds a default context.
type ConversationStore interface {
	Load(userId string, flowId string) (*model.BotContext, error)
	Save(userId string, flowId string, bc *model.BotContext, runStatus model.RunState) error
}
