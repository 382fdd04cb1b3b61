package agent

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/calliq/frontdesk/internal/dialogue"
)

// DefaultThinkingDelay is the simulated processing pause between hearing an
// utterance and speaking the response.
const DefaultThinkingDelay = time.Second

// Session coordinates one voice-agent widget: recognizer -> dialogue table ->
// speaker, a single conversation turn at a time. No two recognition sessions
// may be active concurrently for one widget; Listen while already listening
// stops the recognizer and restarts it instead of stacking sessions.
type Session struct {
	table    *dialogue.Table
	rec      Recognizer
	speaker  Speaker
	thinking time.Duration
	cb       Callbacks

	mu      sync.Mutex
	state   State
	errMsg  string
	history []Turn
}

// Option configures a Session.
type Option func(*Session)

// WithThinkingDelay overrides the simulated processing pause.
func WithThinkingDelay(d time.Duration) Option {
	return func(s *Session) { s.thinking = d }
}

// WithCallbacks installs transport callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(s *Session) { s.cb = cb }
}

// NewSession constructs an idle session for one language table.
func NewSession(table *dialogue.Table, rec Recognizer, speaker Speaker, opts ...Option) *Session {
	s := &Session{
		table:    table,
		rec:      rec,
		speaker:  speaker,
		thinking: DefaultThinkingDelay,
		state:    StateIdle,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current widget state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ErrorMessage returns the localized message for the error state, if any.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// History returns a copy of the completed turns.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Welcome returns the table's opening line.
func (s *Session) Welcome() string { return s.table.Welcome }

// Table exposes the session's dialogue table.
func (s *Session) Table() *dialogue.Table { return s.table }

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	cb := s.cb.OnState
	s.mu.Unlock()
	if cb != nil {
		cb(st)
	}
}

// Listen starts a recognition session. From error it refuses (the user must
// Retry first); while already listening it stops then restarts the recognizer.
func (s *Session) Listen(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateError:
		msg := s.errMsg
		s.mu.Unlock()
		return fmt.Errorf("session in error state: %s", msg)
	case StateProcessing, StateSpeaking:
		s.mu.Unlock()
		return fmt.Errorf("cannot listen while %s", s.state)
	case StateListening:
		s.mu.Unlock()
		s.rec.Stop()
	default:
		s.mu.Unlock()
	}

	if err := s.rec.Start(ctx); err != nil {
		s.mu.Lock()
		s.state = StateError
		s.errMsg = s.table.EngineFail
		cb := s.cb.OnState
		s.mu.Unlock()
		if cb != nil {
			cb(StateError)
		}
		return fmt.Errorf("start recognizer: %w", err)
	}
	s.setState(StateListening)
	return nil
}

// HandleResult consumes one finalized utterance: listening -> processing,
// simulated thinking delay, dialogue lookup, speaking, back to idle. The
// response text is returned; speech failures degrade to a warning, never a
// session error.
func (s *Session) HandleResult(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	if s.state != StateListening {
		st := s.state
		s.mu.Unlock()
		return "", fmt.Errorf("unexpected result in state %s", st)
	}
	s.state = StateProcessing
	cb := s.cb.OnState
	s.mu.Unlock()
	if cb != nil {
		cb(StateProcessing)
	}
	s.rec.Stop()

	select {
	case <-time.After(s.thinking):
	case <-ctx.Done():
		s.setState(StateIdle)
		return "", ctx.Err()
	}

	response := s.table.Respond(text)
	s.setState(StateSpeaking)

	// The shared synthesis queue must never play two utterances at once.
	s.speaker.Cancel()
	if err := s.speaker.Speak(ctx, response); err != nil {
		log.Printf("agent: speak failed: %v", err)
		s.warn(s.table.ErrPrefix + err.Error())
	}

	turn := Turn{User: text, Response: response, At: time.Now()}
	s.mu.Lock()
	s.history = append(s.history, turn)
	onTurn := s.cb.OnTurn
	s.mu.Unlock()
	if onTurn != nil {
		onTurn(turn)
	}
	s.setState(StateIdle)
	return response, nil
}

// HandleFailure consumes a recognition failure. A no-speech timeout silently
// returns the widget to idle; permission denial and anything else enter the
// error state with a language-localized message.
func (s *Session) HandleFailure(reason string) {
	switch reason {
	case FailureNoSpeech:
		s.setState(StateIdle)
	case FailureNotAllowed:
		s.fail(s.table.MicDenied)
	default:
		s.fail(s.table.ErrPrefix + reason)
	}
}

func (s *Session) fail(msg string) {
	s.rec.Stop()
	s.mu.Lock()
	s.state = StateError
	s.errMsg = msg
	cb := s.cb.OnState
	s.mu.Unlock()
	if cb != nil {
		cb(StateError)
	}
}

func (s *Session) warn(msg string) {
	s.mu.Lock()
	cb := s.cb.OnWarning
	s.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

// Retry exits the error state back to idle. It is the only way out of error.
func (s *Session) Retry() {
	s.mu.Lock()
	if s.state != StateError {
		s.mu.Unlock()
		return
	}
	s.state = StateIdle
	s.errMsg = ""
	cb := s.cb.OnState
	s.mu.Unlock()
	if cb != nil {
		cb(StateIdle)
	}
}

// Interrupt cancels any in-flight speech. The in-progress turn still completes
// and returns the session to idle via HandleResult.
func (s *Session) Interrupt() {
	s.speaker.Cancel()
}

// Close stops the recognizer and cancels speech.
func (s *Session) Close() {
	s.rec.Stop()
	s.speaker.Cancel()
}
