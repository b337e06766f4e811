// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/Tom1779/NASAHackathon2025/internal/analyzer"
	"github.com/Tom1779/NASAHackathon2025/internal/config"
	"github.com/Tom1779/NASAHackathon2025/internal/llm"
	"github.com/Tom1779/NASAHackathon2025/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	client := llm.NewClient(&cfg.OpenRouter)
	analyzer := analyzer.New(&cfg.OpenRouter, client)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting Asteroid Composition Analysis API server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
