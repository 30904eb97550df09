package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"brandchat/internal/ai"
	"brandchat/internal/config"
	"brandchat/internal/handler"
	"brandchat/internal/pkg/cache"
	"brandchat/internal/pkg/mongodb"
	"brandchat/internal/repository"
	"brandchat/internal/server/middleware"
	"brandchat/internal/service"
)

// Server is the HTTP server with its backing connections.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New wires connections, store, services and routes.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// MongoDB: optional unless selected as the storage backend
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			if cfg.Storage.Backend == "mongo" {
				return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
			}
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// Redis: optional unless selected as the storage backend
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			if cfg.Storage.Backend == "redis" {
				return nil, fmt.Errorf("failed to connect to Redis: %w", err)
			}
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	if err := srv.setupRoutes(); err != nil {
		return nil, err
	}

	return srv, nil
}

// setupRoutes builds the store, services and route table.
func (s *Server) setupRoutes() error {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	var mongoDB *mongo.Database
	if s.mongo != nil {
		mongoDB = s.mongo.Database()
	}
	var redisClient *redis.Client
	if s.redis != nil {
		redisClient = s.redis.Client()
	}

	store, err := repository.NewStore(s.cfg.Storage.Backend, mongoDB, redisClient)
	if err != nil {
		return err
	}

	systemPrompt := ai.LoadSystemPrompt(&s.cfg.Chat)
	aiClient, err := ai.NewClient(context.Background(), &s.cfg.AI, systemPrompt)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}

	chatSvc := service.NewChatService(aiClient, store)

	chatHdl := handler.NewChatHandler(chatSvc, &s.cfg.Chat)
	healthHdl := handler.NewHealthHandler()
	configHdl := handler.NewConfigHandler(&s.cfg.Chat)
	convHdl := handler.NewConversationHandler(chatSvc)

	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	{
		api.POST("/chat", chatHdl.Chat)
		api.GET("/health", healthHdl.Health)
		api.GET("/config", configHdl.Config)
		api.DELETE("/conversations/:id", convHdl.Delete)
	}

	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
