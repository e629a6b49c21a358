package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/llm"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	application, err := app.New(cfg, geminiClient)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server exiting")
}
