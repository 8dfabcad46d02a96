package main

import (
	"EnergyPalace/internal/config"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/log"
	"EnergyPalace/pkg/speech"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	kvStore := kv.New()
	synthesizer := speech.NewSynthesizer()
	recognizer := speech.NewRecognizer()
	trainer := speech.NewTrainer()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithKVStore(kvStore),
		config.WithSheetsClient(),
		config.WithSynthesizer(synthesizer),
		config.WithRecognizer(recognizer),
		config.WithTrainer(trainer),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
}
