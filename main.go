package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"textlens/internal/auth"
	"textlens/internal/database"
	"textlens/internal/handlers"
	"textlens/internal/llm"
	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	huma "github.com/danielgtaylor/huma/v2"
)

// newLLMClient picks the provider from the options. Ollama is the default;
// openai also covers any OpenAI-compatible endpoint via OpenAIBaseURL.
func newLLMClient(options *models.Options) (llm.Client, error) {
	timeout := time.Duration(options.LLMTimeout) * time.Second
	switch options.Provider {
	case "", "ollama":
		return llm.NewOllamaClient(options.OllamaURL, options.Model, options.EmbedModel, timeout), nil
	case "openai":
		if options.OpenAIKey == "" {
			return nil, fmt.Errorf("the openai provider requires an API key")
		}
		return llm.NewOpenAIClient(options.OpenAIBaseURL, options.OpenAIKey, options.Model, options.EmbedModel, timeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", options.Provider)
	}
}

func main() {
	// Environment variables from a .env file feed the humacli option defaults.
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *models.Options) {
		level := slog.LevelInfo
		if options.Debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		println()
		println("=== Starting textlens ...")
		fmt.Printf("    Options are debug:%v host:%v port:%v provider:%s model:%s dbname:%s\n",
			options.Debug, options.Host, options.Port, options.Provider, options.Model, options.DBName)

		client, err := newLLMClient(options)
		if err != nil {
			fmt.Printf("    Unable to set up LLM client: %v\n", err)
			os.Exit(1)
		}

		// The archive is optional: no database name, no archive routes.
		var pool *pgxpool.Pool
		if options.DBName != "" {
			pool, err = database.InitPool(context.Background(), database.URL(options))
			if err != nil {
				fmt.Printf("    Unable to connect to archive database: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Println("    No database configured, archive disabled.")
		}

		// Create a new router & API
		config := huma.DefaultConfig("textlens API", "0.0.1")
		config.Info.Description = "LLM-backed movie review analysis and resume evaluation."
		config.Components.SecuritySchemes = auth.Config
		router := http.NewServeMux()
		api := humago.New(router, config)
		api.UseMiddleware(auth.AdminKeyAuth(api, options))
		api.UseMiddleware(auth.AuthTermination(api))

		err = handlers.AddRoutes(pool, client, options, api)
		if err != nil {
			fmt.Printf("    Unable to add routes: %v\n", err)
			os.Exit(1)
		}

		server := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", options.Host, options.Port),
			Handler: router,
		}

		hooks.OnStart(func() {
			fmt.Printf("=== Starting API server on port %d...\n\n", options.Port)
			err := server.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				fmt.Printf("listen error: %s\n", err)
			} else {
				fmt.Printf("    API server on port %d stopped.\n", options.Port)
			}
		})

		hooks.OnStop(func() {
			fmt.Printf("\n=== Shutting down API server on port %d...\n", options.Port)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Printf("Shutdown error: %v\n", err)
			}

			if pool != nil {
				pool.Close()
				fmt.Println("    Database pool successfully closed.")
			}
			fmt.Print("=== textlens stopped.\n\n")
		})
	})

	// Run the CLI. When passed no commands, it starts the server.
	cli.Run()
}
