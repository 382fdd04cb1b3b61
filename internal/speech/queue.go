package speech

import (
	"context"
	"fmt"
	"sync"
)

// Engine is the underlying synthesis engine. In the browser this is the
// process-wide speechSynthesis singleton; tests supply fakes. Speak with the
// zero Voice means "use the engine default".
type Engine interface {
	Speak(ctx context.Context, v Voice, text string) error
	Cancel()
	Voices() []Voice
}

// Queue wraps the shared synthesis engine with explicit acquire/cancel
// semantics: Speak always cancels the in-flight utterance first, so widgets
// sharing the engine never overlap audio.
type Queue struct {
	engine Engine

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	warnFn func(msg string)
}

// NewQueue wraps an engine.
func NewQueue(engine Engine) *Queue {
	return &Queue{engine: engine}
}

// SetWarningFunc installs a non-blocking warning callback (voice-miss notices).
func (q *Queue) SetWarningFunc(fn func(msg string)) {
	q.mu.Lock()
	q.warnFn = fn
	q.mu.Unlock()
}

// Speak synthesizes text for the given locale, cancelling any in-flight
// utterance first. A voice miss is not an error: synthesis proceeds with the
// engine's default voice and a warning is raised.
func (q *Queue) Speak(ctx context.Context, text, locale string) error {
	q.Cancel()

	voice, ok := SelectVoice(q.engine.Voices(), locale)
	if !ok {
		q.warn(fmt.Sprintf("no voice installed for %s; using default voice", locale))
	}

	ctx, cancel := context.WithCancel(ctx)
	q.mu.Lock()
	q.gen++
	gen := q.gen
	q.cancel = cancel
	q.mu.Unlock()
	defer func() {
		q.mu.Lock()
		// only clear the slot if a newer utterance hasn't replaced it
		if q.gen == gen {
			q.cancel = nil
		}
		q.mu.Unlock()
		cancel()
	}()

	return q.engine.Speak(ctx, voice, text)
}

// Cancel aborts the in-flight utterance, if any.
func (q *Queue) Cancel() {
	q.mu.Lock()
	cancel := q.cancel
	q.cancel = nil
	q.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	q.engine.Cancel()
}

func (q *Queue) warn(msg string) {
	q.mu.Lock()
	fn := q.warnFn
	q.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

// LocaleSpeaker binds a Queue to one locale so it satisfies the agent's
// Speaker interface.
type LocaleSpeaker struct {
	Queue  *Queue
	Locale string
}

func (s *LocaleSpeaker) Speak(ctx context.Context, text string) error {
	return s.Queue.Speak(ctx, text, s.Locale)
}

func (s *LocaleSpeaker) Cancel() { s.Queue.Cancel() }
