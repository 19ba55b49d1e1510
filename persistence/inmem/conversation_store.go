package inmem

import (
	"sync"

	"github.com/AgrI-Mitra/bff/model"
	"github.com/AgrI-Mitra/bff/persistence"
)

var _ persistence.ConversationStore = new(InMemConversationStore)

// InMemConversationStore backs the "memory" storage type. Contexts go
// through the same codec as redis so schema enforcement is identical.
type InMemConversationStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	codec *persistence.ContextCodec
}

func NewInMemConversationStore() *InMemConversationStore {
	return &InMemConversationStore{
		data:  make(map[string][]byte),
		codec: persistence.NewContextCodec(),
	}
}

func key(userId, flowId string) string {
	return userId + ":" + flowId
}

func (s *InMemConversationStore) Load(userId string, flowId string) (*model.BotContext, error) {
	s.mu.RLock()
	blob, ok := s.data[key(userId, flowId)]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.codec.Decode(blob)
}

func (s *InMemConversationStore) Save(userId string, flowId string, bc *model.BotContext, runStatus model.RunState) error {
	blob, err := s.codec.Encode(bc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key(userId, flowId)] = blob
	s.mu.Unlock()
	return nil
}
