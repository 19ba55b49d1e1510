package agent

import (
	"sync"

	"github.com/AgrI-Mitra/bff/analytics"
	"github.com/AgrI-Mitra/bff/config"
	"github.com/AgrI-Mitra/bff/container"
	"github.com/AgrI-Mitra/bff/logger"
	"github.com/AgrI-Mitra/bff/rest"
	"github.com/AgrI-Mitra/bff/service"
)

type Agent struct {
	Config        config.Config
	container     *container.DIContiner
	promptService *service.PromptService
	httpServer    *rest.Server
	shutdown      bool
	shutdowns     chan struct{}
	shutdownLock  sync.Mutex
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupContainer,
		a.setupTranscriptCollector,
		a.setupPromptService,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupContainer() error {
	a.container = container.NewDiContainer()
	return a.container.Init(a.Config)
}

func (a *Agent) setupTranscriptCollector() error {
	collectorType := analytics.NOOP_TRANSCRIPT_COLLECTOR
	if a.Config.TranscriptFile != "" {
		collectorType = analytics.LOG_FILE_TRANSCRIPT_COLLECTOR
	}
	return analytics.InitTranscriptCollector(analytics.TranscriptCollectorConfig{
		FileName:      a.Config.TranscriptFile,
		CollectorType: collectorType,
	})
}

func (a *Agent) setupPromptService() error {
	a.promptService = service.NewPromptService(
		a.container.GetFlows(),
		a.container.GetConversationStore(),
		a.container.GetAiClient(),
		a.container.GetStateCache(),
	)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.container, a.promptService)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	go func() {
		err := a.httpServer.Start()
		if err != nil {
			_ = a.Shutdown()
			panic(err)
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	close(a.shutdowns)

	return a.httpServer.Stop()
}
