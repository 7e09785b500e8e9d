package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"github.com/krishngohel/AIDebateTool/internal/config"
	"github.com/krishngohel/AIDebateTool/internal/controller"
	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/internal/repository/memory"
	"github.com/krishngohel/AIDebateTool/internal/service"
	"github.com/krishngohel/AIDebateTool/pkg/debate"
	"github.com/krishngohel/AIDebateTool/pkg/debate/score"
	"github.com/krishngohel/AIDebateTool/pkg/llm/factory"
	"github.com/krishngohel/AIDebateTool/pkg/moderation"
	"github.com/krishngohel/AIDebateTool/pkg/moderation/strikes"
	"github.com/krishngohel/AIDebateTool/pkg/session"
)

type Container struct {
	DebateController controller.IDebateController

	// Background services (exposed for main.go to run)
	RecorderService service.IRecorderService

	Logger logger.ILogger
}

func NewContainer(sessionStore session.Store, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Fail fast on a bad difficulty table edit.
	if err := debate.ValidateProfiles(); err != nil {
		log.Fatalf("[FATAL] Invalid difficulty profiles: %v", err)
	}

	// Event bus for async session logging.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM provider from config.
	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		baseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		baseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Strike store: in-memory by default, Redis when running more than one
	// instance behind a balancer.
	var strikeStore strikes.Store
	if cfg.Moderation.StrikeStore == "redis" {
		opt, err := redis.ParseURL(cfg.Moderation.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Moderation.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		strikeStore = strikes.NewRedisStore(rdb, 24*time.Hour)
		log.Printf("[INFO] Using Strike Store: REDIS")
	} else {
		strikeStore = strikes.NewMemoryStore(24 * time.Hour)
		log.Printf("[INFO] Using Strike Store: MEMORY")
	}

	// Optional external moderation classifier, fail-open.
	var classifier moderation.Classifier
	if cfg.Moderation.ClassifierEndpoint != "" {
		classifier = moderation.NewHTTPClassifier(cfg.Moderation.ClassifierEndpoint)
		log.Printf("[INFO] External moderation classifier enabled")
	}

	gate := moderation.NewGate(strikeStore, classifier, cfg.Moderation.StrikeThreshold, sysLogger)

	seed := cfg.Debate.JitterSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shaper := score.NewShaper(score.NewRand(seed))

	sessionRepo := memory.NewSessionRepository()
	publisherService := service.NewPublisherService(pubSub)
	recorderService := service.NewRecorderService(pubSub, sessionStore, sysLogger)

	debateService := service.NewDebateService(
		gate,
		llmProvider,
		shaper,
		sessionRepo,
		publisherService,
		cfg.Debate.RoundLimit,
		sysLogger,
	)

	return &Container{
		DebateController: controller.NewDebateController(debateService),
		RecorderService:  recorderService,
		Logger:           sysLogger,
	}
}
