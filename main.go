package main

import (
	"context"
	"log"

	"stailab/internal/config"
	"stailab/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	ds, err := appContainer.Loader.Load()
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Runtime.Timeout)
	defer cancel()

	rep, err := appContainer.Analysis.Run(ctx, ds)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if err := appContainer.Console.Render(rep); err != nil {
		log.Fatalf("Failed to print report: %v", err)
	}
	log.Printf("Artifacts written to %s", appConfig.Output.Dir)
}
