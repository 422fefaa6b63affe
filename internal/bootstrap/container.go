package bootstrap

import (
	"context"
	"log"

	"ai-resumebuilder-be/internal/config"
	"ai-resumebuilder-be/internal/controller"
	"ai-resumebuilder-be/internal/handler"
	"ai-resumebuilder-be/internal/pkg/logger"
	"ai-resumebuilder-be/internal/repository/implementation"
	"ai-resumebuilder-be/internal/repository/memory"
	"ai-resumebuilder-be/internal/repository/unitofwork"
	"ai-resumebuilder-be/internal/service"
	"ai-resumebuilder-be/internal/websocket"
	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/artifact"
	"ai-resumebuilder-be/pkg/contextmgr"
	"ai-resumebuilder-be/pkg/llm/factory"
	"ai-resumebuilder-be/pkg/renderer"
	"ai-resumebuilder-be/pkg/resume"
	"ai-resumebuilder-be/pkg/tools"

	pktNats "ai-resumebuilder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	ChatController         controller.IChatController
	ArtifactController     controller.IArtifactController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Preview
	PreviewHandler *handler.PreviewHandler
	WebSocketHub   *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory conversation context cache
	contextCache := memory.NewContextRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub for artifact preview pushes
	wsLogger := logger.NewIsolatedLogger("logs/preview.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Pipeline
	pipelineLogger := log.Default()

	publisherService := service.NewPublisherService(cfg.Topics.ProfileFacts, pubSub)
	profileSink := service.NewProfileFactsPublisher(publisherService)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.ProfileFacts,
		uowFactory,
	)

	contextManager := contextmgr.NewManager(contextCache, uowFactory, profileSink, pipelineLogger)

	artifactStore := artifact.NewStore(
		implementation.NewArtifactRepository(db),
		resume.NewDefaultSanitizer(),
	)
	docRenderer := renderer.NewHTTPRenderer(cfg.Renderer.BaseURL)

	executor := tools.NewExecutor(pipelineLogger)
	tools.NewResumeTools(artifactStore, docRenderer).RegisterAll(executor)
	tools.NewArtifactTools(artifactStore).RegisterAll(executor)

	orchestrator := agent.NewOrchestrator(
		[]agent.Agent{
			agent.NewCreatorAgent(llmProvider, pipelineLogger),
			agent.NewEditorAgent(llmProvider, pipelineLogger),
			agent.NewDesignerAgent(llmProvider, pipelineLogger),
			agent.NewOptimizerAgent(llmProvider, pipelineLogger),
		},
		agent.NewKeywordClassifier(),
		executor,
		contextManager,
		pipelineLogger,
	)

	// 4. Services
	conversationService := service.NewConversationService(uowFactory, contextManager)
	assistantService := service.NewAssistantService(
		uowFactory,
		orchestrator,
		llmProvider,
		agent.NewKeywordClassifier(),
		artifactStore,
		contextManager,
		natsPub,
	)
	artifactService := service.NewArtifactService(uowFactory, artifactStore, contextManager, docRenderer)

	// Preview push (NATS -> Hub)
	previewService := service.NewPreviewService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go previewService.Start()
	}

	previewHandler := handler.NewPreviewHandler(wsHub, sysLogger)

	// 5. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		ChatController:         controller.NewChatController(assistantService),
		ArtifactController:     controller.NewArtifactController(artifactService),

		ConsumerService: consumerService,

		PreviewHandler: previewHandler,
		WebSocketHub:   wsHub,
	}
}
