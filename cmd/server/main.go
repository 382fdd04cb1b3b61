package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/calliq/frontdesk/api/http"
	"github.com/calliq/frontdesk/internal/config"
	"github.com/calliq/frontdesk/internal/httpserver"
	"github.com/calliq/frontdesk/internal/livechat"
	"github.com/calliq/frontdesk/internal/llm"
	"github.com/calliq/frontdesk/internal/store"
	"github.com/calliq/frontdesk/internal/tts"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()

	leads, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open lead store: %v", err)
	}
	defer func() { _ = leads.Close() }()

	e := httpserver.New()
	handlers := apihttp.Handlers{
		Chat:  llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModelID),
		Leads: leads,
		TTS:   tts.NewRelayClient(cfg.TTSBaseURL),
		Live:  livechat.NewHandler().Handle,
	}
	handlers.Register(e)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = server.Close()
	}
}
