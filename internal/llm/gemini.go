package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrMissingKey is returned before any upstream call when no API key is set.
var ErrMissingKey = errors.New("gemini api key missing")

// receptionistPersona is the fixed system instruction for the chat agent.
const receptionistPersona = `You are 'City General AI', a professional, empathetic, and efficient medical receptionist at City General Hospital.

            Key Responsibilities:
            1. Scheduling: You can book appointments. Ask for patient name, urgency, and preferred time. (Simulate availability).
            2. Triage: If a user mentions severe pain, bleeding, or chest pressure, IMMEDIATELY advise them to hang up and call 911.
            3. General Info: Answer questions about hours (Open 24/7), location (123 Health Ave), and visiting hours (8 AM - 8 PM).

            Tone: Warm, calm, and reassuring. Keep responses concise (under 2-3 sentences) suitable for a voice interface.

            Never break character. Do not mention you are an AI unless explicitly asked.`

// Turn is one prior conversation turn as supplied by the caller. The server
// holds no session state; history rides in on every request.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is a single text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// GeminiClient calls the hosted generateContent API.
type GeminiClient struct {
	HTTPClient *http.Client
	APIKey     string
	Model      string
}

type generateContentRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		APIKey:     apiKey,
		Model:      model,
	}
}

// normalizeRole maps caller-supplied roles onto the two roles the upstream
// accepts; "assistant" is an alias for "model" and anything unknown is "user".
func normalizeRole(role string) string {
	switch strings.ToLower(role) {
	case "model", "assistant":
		return "model"
	default:
		return "user"
	}
}

// Generate forwards the message plus prior history to the model under the
// receptionist persona and returns the generated text verbatim.
func (c *GeminiClient) Generate(ctx context.Context, message string, history []Turn) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingKey
	}
	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", c.Model)

	contents := make([]content, 0, len(history)+1)
	for _, t := range history {
		if len(t.Parts) == 0 {
			continue
		}
		contents = append(contents, content{Role: normalizeRole(t.Role), Parts: t.Parts})
	}
	contents = append(contents, content{Role: "user", Parts: []Part{{Text: message}}})

	reqBody, _ := json.Marshal(generateContentRequest{
		SystemInstruction: &content{Parts: []Part{{Text: receptionistPersona}}},
		Contents:          contents,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error: status=%d body=%s", resp.StatusCode, string(b))
	}
	var gr generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty candidates")
	}
	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
