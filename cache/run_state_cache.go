package cache

import (
	"fmt"
	"time"

	"github.com/AgrI-Mitra/bff/model"
	c "github.com/patrickmn/go-cache"
)

// RunStateCache remembers the last run status per conversation so a turn
// arriving for an already finished conversation can be short-circuited
// without a store round trip. Entries expire; the store stays the source
// of truth.
type RunStateCache struct {
	cache *c.Cache
}

func NewRunStateCache() *RunStateCache {
	return &RunStateCache{
		cache: c.New(24*time.Hour, 10*time.Minute),
	}
}

func (ch *RunStateCache) Save(userId string, flowId string, state model.RunState) {
	ch.cache.Set(cacheKey(userId, flowId), string(state), c.DefaultExpiration)
}

func (ch *RunStateCache) Get(userId string, flowId string) (model.RunState, bool) {
	stateStr, found := ch.cache.Get(cacheKey(userId, flowId))
	if found {
		return model.RunState(fmt.Sprintf("%v", stateStr)), true
	}
	return model.RunState(""), false
}

func cacheKey(userId string, flowId string) string {
	return userId + ":" + flowId
}
