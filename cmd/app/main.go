package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"station-guard/internal/config"
	"station-guard/internal/entity"
	"station-guard/pkg/detector"
	"station-guard/pkg/log"
	"station-guard/pkg/redis"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()
	detectorClient := detector.NewDetectorClient()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithEquipmentRegistry(entity.DefaultEquipmentRegistry()),
		config.WithRedisServer(redisServer),
		config.WithDetectorClient(detectorClient),
		config.WithMiddleware(),
		config.WithS3Client(),
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
	detectorClient.CloseConnection()
}
