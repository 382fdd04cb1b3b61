package agent

import (
	"context"
	"time"
)

// State is the widget conversation state. Transitions are strictly sequential
// per Session: idle -> listening -> processing -> speaking -> idle, with error
// reachable from idle/listening and exited only via Retry.
type State string

const (
	StateIdle       State = "idle"
	StateListening  State = "listening"
	StateProcessing State = "processing"
	StateSpeaking   State = "speaking"
	StateError      State = "error"
)

// Recognizer is the minimal interface over a speech-recognition engine for one
// widget. Results and failures are delivered back to the session by whoever
// owns the engine (the websocket transport relays the browser's events).
type Recognizer interface {
	Start(ctx context.Context) error
	Stop()
}

// Speaker produces audible speech for one response string. Speak blocks until
// playback completes or ctx is cancelled; Cancel aborts any in-flight
// utterance immediately.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Cancel()
}

// Turn pairs one finalized utterance with the response spoken back.
type Turn struct {
	User     string
	Response string
	At       time.Time
}

// Callbacks notify the transport about session activity. All callbacks are
// invoked without the session lock held and may be nil.
type Callbacks struct {
	OnState   func(s State)
	OnTurn    func(t Turn)
	OnWarning func(msg string)
}

// Recognition failure reasons, mirroring the browser SpeechRecognition error
// codes the widgets handle.
const (
	FailureNoSpeech   = "no-speech"
	FailureNotAllowed = "not-allowed"
)
