package config

import (
	"EnergyPalace/database/postgres"
	posHandler "EnergyPalace/internal/api/pos/handler"
	posService "EnergyPalace/internal/api/pos/service"
	sheetHandler "EnergyPalace/internal/api/sheet/handler"
	sheetService "EnergyPalace/internal/api/sheet/service"
	trainingHandler "EnergyPalace/internal/api/training/handler"
	trainingService "EnergyPalace/internal/api/training/service"
	voiceHandler "EnergyPalace/internal/api/voice/handler"
	voiceRepository "EnergyPalace/internal/api/voice/repository"
	voiceService "EnergyPalace/internal/api/voice/service"
	"EnergyPalace/internal/middleware"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/nlp"
	"EnergyPalace/pkg/sheets"
	"EnergyPalace/pkg/speech"
	"EnergyPalace/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	kvStore      kv.IKV
	sheetsClient sheets.ItfSheets
	synthesizer  speech.ItfSynthesizer
	recognizer   speech.ItfRecognizer
	trainer      speech.ItfTrainer
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

func WithKVStore(store kv.IKV) ServerOption {
	return func(s *Server) error {
		s.kvStore = store
		return nil
	}
}

func WithSheetsClient() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before sheets client")
		}
		s.sheetsClient = sheets.New(s.log)
		return nil
	}
}

func WithSynthesizer(synthesizer speech.ItfSynthesizer) ServerOption {
	return func(s *Server) error {
		s.synthesizer = synthesizer
		return nil
	}
}

func WithRecognizer(recognizer speech.ItfRecognizer) ServerOption {
	return func(s *Server) error {
		s.recognizer = recognizer
		return nil
	}
}

func WithTrainer(trainer speech.ItfTrainer) ServerOption {
	return func(s *Server) error {
		s.trainer = trainer
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
	// Sheet Domain
	sheetServices := sheetService.NewSheetService(s.log, s.kvStore, s.sheetsClient, s.utils, os.Getenv("SHEETS_SCRIPT_URL"))
	sheetHandlers := sheetHandler.New(s.log, s.validator, s.middleware, sheetServices)

	// Point of Sale Domain
	posServices := posService.NewPosService(s.log, s.kvStore, s.sheetsClient, sheetServices)
	posHandlers := posHandler.New(s.log, s.validator, s.middleware, posServices)

	// Training Domain
	trainingServices := trainingService.NewTrainingService(s.log, s.kvStore, s.trainer, s.synthesizer, s.utils)
	trainingHandlers := trainingHandler.New(s.log, s.validator, s.middleware, trainingServices)

	// Voice Assistant Domain
	parser := nlp.NewParser()
	responder := nlp.NewResponder()
	voiceRepo := voiceRepository.New(s.db, s.log)
	voiceServices := voiceService.NewVoiceService(s.log, voiceRepo, posServices, parser, responder, s.recognizer, s.synthesizer, s.utils)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, sheetHandlers, posHandlers, trainingHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	router := s.engine.Group("/api/v1", s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
