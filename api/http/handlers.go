package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calliq/frontdesk/internal/llm"
	"github.com/calliq/frontdesk/internal/store"
	"github.com/calliq/frontdesk/internal/tts"
)

// ChatModel generates one reply for a message plus caller-supplied history.
type ChatModel interface {
	Generate(ctx context.Context, message string, history []llm.Turn) (string, error)
}

// AudioFetcher fetches synthesized audio bytes for text in a language.
type AudioFetcher interface {
	Fetch(ctx context.Context, text, lang string) ([]byte, error)
}

// Handlers bundles the REST endpoints' dependencies.
type Handlers struct {
	Chat  ChatModel
	Leads store.Repository
	TTS   AudioFetcher
	Live  echo.HandlerFunc // websocket live-agent endpoint, optional
}

// Register mounts all routes on the Echo instance.
func (h Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", h.healthz)
	e.POST("/api/agent", h.agentChat)
	e.POST("/api/leads", h.createLead)
	e.GET("/api/tts", h.ttsRelay)
	if h.Live != nil {
		e.GET("/api/agent/live", h.Live)
	}
}

func (h Handlers) healthz(c echo.Context) error {
	if h.Leads != nil {
		if err := h.Leads.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "store unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}

type agentRequest struct {
	Message        string     `json:"message"`
	ContextHistory []llm.Turn `json:"contextHistory"`
}

type agentResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h Handlers) agentChat(c echo.Context) error {
	var req agentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Message is required"})
	}

	reply, err := h.Chat.Generate(c.Request().Context(), req.Message, req.ContextHistory)
	if err != nil {
		if errors.Is(err, llm.ErrMissingKey) {
			c.Logger().Error("agent: missing API key")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Missing API Key"})
		}
		c.Logger().Errorf("agent: generate failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to process request"})
	}
	return c.JSON(http.StatusOK, agentResponse{Response: reply})
}

type leadRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Plan    string `json:"plan"`
}

type leadResponse struct {
	Success bool       `json:"success"`
	Lead    store.Lead `json:"lead"`
}

func (h Handlers) createLead(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}

	lead, err := h.Leads.CreateLead(c.Request().Context(), store.Lead{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
		Plan:    req.Plan,
	})
	switch {
	case errors.Is(err, store.ErrEmailRequired):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email is required"})
	case errors.Is(err, store.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, errorResponse{Error: "This email is already registered"})
	case err != nil:
		c.Logger().Errorf("leads: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, leadResponse{Success: true, Lead: lead})
}

func (h Handlers) ttsRelay(c echo.Context) error {
	text := c.QueryParam("text")
	if text == "" {
		return c.String(http.StatusBadRequest, "Missing text")
	}
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = "en"
	}

	audio, err := h.TTS.Fetch(c.Request().Context(), text, lang)
	if err != nil {
		if errors.Is(err, tts.ErrEmptyText) {
			return c.String(http.StatusBadRequest, "Missing text")
		}
		c.Logger().Errorf("tts: relay failed: %v", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error fetching audio")
	}

	// audio is immutable for a given text+lang; let browsers cache hard
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}
