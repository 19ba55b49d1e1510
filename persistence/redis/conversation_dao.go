package redis

import (
	"context"
	"errors"

	rd "github.com/go-redis/redis/v9"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/model"
	"github.com/AgrI-Mitra/bff/persistence"
	"go.uber.org/zap"
)

const CONVERSATION_KEY string = "CONV"
const RUN_STATUS_KEY string = "CONV_STATUS"

var _ persistence.ConversationStore = new(redisConversationStore)

// redisConversationStore keeps one hash per flow: field = userId, value =
// the schema-versioned context blob. Run status lives in a parallel hash
// so it can be read without decoding the context.
type redisConversationStore struct {
	baseDao
	codec *persistence.ContextCodec
}

func NewRedisConversationStore(conf Config) *redisConversationStore {
	return &redisConversationStore{
		baseDao: *newBaseDao(conf),
		codec:   persistence.NewContextCodec(),
	}
}

func (rc *redisConversationStore) Load(userId string, flowId string) (*model.BotContext, error) {
	key := rc.getNamespaceKey(CONVERSATION_KEY, flowId)
	ctx := context.Background()
	data, err := rc.redisClient.HGet(ctx, key, userId).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, nil
		}
		logger.Error("error loading conversation",
			zap.String("userId", userId), zap.String("flowId", flowId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	bc, err := rc.codec.Decode([]byte(data))
	if err != nil {
		return nil, err
	}
	return bc, nil
}

func (rc *redisConversationStore) Save(userId string, flowId string, bc *model.BotContext, runStatus model.RunState) error {
	key := rc.getNamespaceKey(CONVERSATION_KEY, flowId)
	statusKey := rc.getNamespaceKey(RUN_STATUS_KEY, flowId)
	ctx := context.Background()
	data, err := rc.codec.Encode(bc)
	if err != nil {
		return err
	}
	pipe := rc.redisClient.TxPipeline()
	pipe.HSet(ctx, key, userId, string(data))
	pipe.HSet(ctx, statusKey, userId, string(runStatus))
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("error saving conversation",
			zap.String("userId", userId), zap.String("flowId", flowId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}
