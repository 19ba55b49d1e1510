package container

import (
	"github.com/AgrI-Mitra/bff/action"
	"github.com/AgrI-Mitra/bff/aitools"
	"github.com/AgrI-Mitra/bff/cache"
	"github.com/AgrI-Mitra/bff/config"
	"github.com/AgrI-Mitra/bff/flow"
	"github.com/AgrI-Mitra/bff/guard"
	"github.com/AgrI-Mitra/bff/kisan"
	"github.com/AgrI-Mitra/bff/persistence"
	"github.com/AgrI-Mitra/bff/persistence/inmem"
	rd "github.com/AgrI-Mitra/bff/persistence/redis"
	"github.com/AgrI-Mitra/bff/util"
)

type DIContiner struct {
	initialized       bool
	conversationStore persistence.ConversationStore
	stateCache        *cache.RunStateCache
	aiClient          aitools.Client
	portalClient      kisan.Client
	guards            *guard.Registry
	services          *action.Registry
	flows             map[string]*flow.Flow
}

func (p *DIContiner) setInitialized() {
	p.initialized = true
}

func NewDiContainer() *DIContiner {
	return &DIContiner{
		initialized: false,
	}
}

func (d *DIContiner) Init(conf config.Config) error {
	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:     conf.RedisConfig.Addrs,
			Namespace: conf.RedisConfig.Namespace,
			PoolSize:  conf.RedisConfig.PoolSize,
			Password:  conf.RedisConfig.Password,
		}
		d.conversationStore = rd.NewRedisConversationStore(rdConf)
	case config.STORAGE_TYPE_INMEM:
		d.conversationStore = inmem.NewInMemConversationStore()
	}
	d.stateCache = cache.NewRunStateCache()

	d.aiClient = aitools.NewHttpClient(conf.AiToolsBaseUrl)
	d.portalClient = kisan.NewHttpClient(conf.KisanBaseUrl, conf.KisanToken)

	shapeOrder, err := util.ParseShapeOrder(conf.IdentifierOrder)
	if err != nil {
		return err
	}
	d.guards = guard.NewRegistry()
	d.services = action.NewBotServices(d.aiClient, d.portalClient, shapeOrder).NewRegistry()
	d.flows, err = flow.CompileAll(d.guards, d.services)
	if err != nil {
		return err
	}
	d.setInitialized()
	return nil
}

func (d *DIContiner) GetConversationStore() persistence.ConversationStore {
	if !d.initialized {
		panic("container not initalized")
	}
	return d.conversationStore
}

func (d *DIContiner) GetStateCache() *cache.RunStateCache {
	if !d.initialized {
		panic("container not initalized")
	}
	return d.stateCache
}

func (d *DIContiner) GetAiClient() aitools.Client {
	if !d.initialized {
		panic("container not initalized")
	}
	return d.aiClient
}

func (d *DIContiner) GetFlows() map[string]*flow.Flow {
	if !d.initialized {
		panic("container not initalized")
	}
	return d.flows
}
