// Package livechat drives a voice-agent session over a websocket. The browser
// owns the actual speech engines; it streams recognition results and failures
// up, and the server answers with state transitions and responses, falling
// back to relay-audio URLs when the client reported no matching voice.
package livechat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/calliq/frontdesk/internal/agent"
	"github.com/calliq/frontdesk/internal/dialogue"
	"github.com/calliq/frontdesk/internal/speech"
)

// Client frame types.
const (
	frameHello     = "hello"
	frameListen    = "listen"
	frameUtterance = "utterance"
	frameFailure   = "failure"
	frameInterrupt = "interrupt"
	frameRetry     = "retry"
	frameBye       = "bye"
)

// Server frame types.
const (
	frameState      = "state"
	frameTranscript = "transcript"
	frameResponse   = "response"
	frameWarning    = "warning"
	frameError      = "error"
)

type clientFrame struct {
	Type   string         `json:"type"`
	Lang   string         `json:"lang,omitempty"`
	Voices []speech.Voice `json:"voices,omitempty"`
	Text   string         `json:"text,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

type serverFrame struct {
	Type     string `json:"type"`
	State    string `json:"state,omitempty"`
	Text     string `json:"text,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
	Message  string `json:"message,omitempty"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Allow any origin for demo use; restrict in production
		return true
	},
}

// Handler serves one agent session per websocket connection.
type Handler struct {
	// Thinking overrides the simulated processing delay; zero keeps the default.
	Thinking time.Duration
	// TTSPath is the relay endpoint handed to voice-less clients.
	TTSPath string
}

// NewHandler returns a handler with the default relay path.
func NewHandler() *Handler {
	return &Handler{TTSPath: "/api/tts"}
}

// Handle upgrades the connection and runs the session loop until the client
// says bye or the connection drops.
func (h *Handler) Handle(c echo.Context) error {
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("livechat: ws upgrade error: %v", err)
		return nil
	}
	defer func() { _ = conn.Close() }()
	h.serve(c.Request().Context(), conn)
	return nil
}

type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) send(f serverFrame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.WriteJSON(f); err != nil {
		log.Printf("livechat: ws write error: %v", err)
	}
}

func (h *Handler) serve(ctx context.Context, conn *websocket.Conn) {
	w := &wsWriter{conn: conn}

	hello, ok := readFrame(conn)
	if !ok || hello.Type != frameHello {
		w.send(serverFrame{Type: frameError, Message: "expected hello frame"})
		return
	}
	table, ok := dialogue.ForLang(hello.Lang)
	if !ok {
		w.send(serverFrame{Type: frameError, Message: fmt.Sprintf("unsupported language %q", hello.Lang)})
		return
	}

	// Run voice selection over the client's installed voices; a miss switches
	// responses to relay-audio playback and raises a non-blocking warning.
	useRelay := false
	if _, found := speech.SelectVoice(hello.Voices, table.Locale); !found {
		useRelay = true
		w.send(serverFrame{Type: frameWarning, Message: fmt.Sprintf("no %s voice installed; responses will use relay audio", table.Locale)})
	}

	thinking := h.Thinking
	if thinking == 0 {
		thinking = agent.DefaultThinkingDelay
	}
	sess := agent.NewSession(table, remoteRecognizer{}, remoteSpeaker{},
		agent.WithThinkingDelay(thinking),
		agent.WithCallbacks(agent.Callbacks{
			OnState:   func(s agent.State) { w.send(serverFrame{Type: frameState, State: string(s)}) },
			OnWarning: func(msg string) { w.send(serverFrame{Type: frameWarning, Message: msg}) },
		}),
	)
	defer sess.Close()

	w.send(h.responseFrame(sess.Welcome(), table.Lang, useRelay))

	for {
		m, ok := readFrame(conn)
		if !ok {
			return
		}
		switch m.Type {
		case frameListen:
			if err := sess.Listen(ctx); err != nil {
				msg := sess.ErrorMessage()
				if msg == "" {
					msg = err.Error()
				}
				w.send(serverFrame{Type: frameError, Message: msg})
			}
		case frameUtterance:
			w.send(serverFrame{Type: frameTranscript, Text: m.Text})
			resp, err := sess.HandleResult(ctx, m.Text)
			if err != nil {
				w.send(serverFrame{Type: frameError, Message: err.Error()})
				continue
			}
			w.send(h.responseFrame(resp, table.Lang, useRelay))
		case frameFailure:
			sess.HandleFailure(m.Reason)
			if sess.State() == agent.StateError {
				w.send(serverFrame{Type: frameError, Message: sess.ErrorMessage()})
			}
		case frameInterrupt:
			sess.Interrupt()
		case frameRetry:
			sess.Retry()
		case frameBye:
			return
		default:
			log.Printf("livechat: unknown frame type %q", m.Type)
		}
	}
}

func (h *Handler) responseFrame(text, lang string, useRelay bool) serverFrame {
	f := serverFrame{Type: frameResponse, Text: text}
	if useRelay {
		path := h.TTSPath
		if path == "" {
			path = "/api/tts"
		}
		f.AudioURL = fmt.Sprintf("%s?text=%s&lang=%s", path, url.QueryEscape(text), lang)
	}
	return f
}

func readFrame(conn *websocket.Conn) (clientFrame, bool) {
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return clientFrame{}, false
		}
		if mt != websocket.TextMessage {
			continue
		}
		var m clientFrame
		if err := json.Unmarshal(data, &m); err != nil {
			log.Printf("livechat: bad frame: %v", err)
			continue
		}
		return m, true
	}
}

// The browser owns the real engines; these stand-ins mirror their lifecycle
// so the session's transition rules still apply.
type remoteRecognizer struct{}

func (remoteRecognizer) Start(context.Context) error { return nil }
func (remoteRecognizer) Stop()                       {}

type remoteSpeaker struct{}

func (remoteSpeaker) Speak(context.Context, string) error { return nil }
func (remoteSpeaker) Cancel()                             {}
