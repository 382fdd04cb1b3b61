package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress   string
	GeminiAPIKey  string
	GeminiModelID string
	DatabasePath  string
	TTSBaseURL    string
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set - the chat agent will not work")
	}
	geminiModel := os.Getenv("GEMINI_MODEL_ID")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-flash"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/frontdesk.db"
	}

	// Empty means the relay client's public default endpoint.
	ttsBase := os.Getenv("TTS_BASE_URL")

	log.Printf("config: HTTP_ADDRESS=%s DATABASE_PATH=%s", addr, dbPath)
	return Config{
		HTTPAddress:   addr,
		GeminiAPIKey:  geminiKey,
		GeminiModelID: geminiModel,
		DatabasePath:  dbPath,
		TTSBaseURL:    ttsBase,
	}
}
