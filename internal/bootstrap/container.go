package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"booksland-be/internal/config"
	"booksland-be/internal/controller"
	"booksland-be/internal/pkg/logger"
	"booksland-be/internal/repository/implementation"
	"booksland-be/internal/repository/memory"
	"booksland-be/internal/repository/redisstore"
	"booksland-be/internal/service"
	"booksland-be/pkg/chat"
	"booksland-be/pkg/chat/match"
	"booksland-be/pkg/chat/reply"
	"booksland-be/pkg/chat/state"
	"booksland-be/pkg/clip"
	"booksland-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	chatLogger := initChatLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External Collaborators
	clipClient := clip.NewClient(
		cfg.Clip.BaseURL,
		time.Duration(cfg.Clip.MatchTimeoutSeconds)*time.Second,
		time.Duration(cfg.Clip.PushTimeoutSeconds)*time.Second,
	)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenRouter,
		time.Duration(cfg.Ai.ReplyTimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider initialized", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 4. Conversation Storage
	var conversationRepo state.ConversationRepository
	if cfg.App.ConversationStore == "redis" {
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
		conversationRepo = redisstore.NewConversationRepository(rdb)
		sysLogger.Info("BOOTSTRAP", "Using Redis conversation store", nil)
	} else {
		conversationRepo = memory.NewConversationRepository()
		sysLogger.Info("BOOTSTRAP", "Using in-memory conversation store", nil)
	}

	// 5. Repositories & Services
	bookRepo := implementation.NewBookRepository(db)
	catalogService := service.NewCatalogService(bookRepo)

	orchestrator := chat.NewOrchestrator(
		state.NewManager(conversationRepo, chatLogger),
		match.NewTitleMatcher(),
		match.NewColorMatcher(clipClient, chatLogger),
		match.NewSemanticMatcher(clipClient, chatLogger),
		reply.NewComposer(llmProvider, chatLogger),
		catalogService,
		chatLogger,
	)
	chatService := service.NewChatService(orchestrator)

	indexerLogger := logger.NewIsolatedLogger("logs/indexer.log")
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.App.CatalogSyncTopic,
		catalogService,
		clipClient,
		indexerLogger,
	)

	// 6. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		CatalogController: controller.NewCatalogController(catalogService),

		IndexerService: indexerService,
	}
}

func initChatLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "chat.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[CHAT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
