package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"station-guard/database/postgres"
	analysisHandler "station-guard/internal/api/analysis/handler"
	analysisService "station-guard/internal/api/analysis/service"
	safetyHandler "station-guard/internal/api/safety/handler"
	safetyRepository "station-guard/internal/api/safety/repository"
	safetyService "station-guard/internal/api/safety/service"
	"station-guard/internal/entity"
	"station-guard/internal/middleware"
	"station-guard/pkg/detector"
	"station-guard/pkg/redis"
	"station-guard/pkg/s3"
	"station-guard/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	registry       *entity.EquipmentRegistry
	redisServer    redis.IRedis
	s3Client       s3.ItfS3
	detectorClient detector.IDetector
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithEquipmentRegistry(registry *entity.EquipmentRegistry) ServerOption {
	return func(s *Server) error {
		s.registry = registry
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithDetectorClient(detectorClient detector.IDetector) ServerOption {
	return func(s *Server) error {
		s.detectorClient = detectorClient
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Analysis Domain
	analysisServices := analysisService.NewAnalysisService(s.log, s.registry, s.redisServer, analysisService.DefaultParams())
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices)

	// Safety Domain
	safetyRepo := safetyRepository.New(s.db, s.log)
	safetyServices := safetyService.NewSafetyService(s.log, safetyRepo, analysisServices, s.registry, s.redisServer, s.s3Client, s.detectorClient, s.utils, runtime.NumCPU())
	safetyHandlers := safetyHandler.New(s.log, s.validator, s.middleware, safetyServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, analysisHandlers, safetyHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.detectorClient != nil {
			s.detectorClient.CloseConnection()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
