package speech

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Line is one scripted transcript line of a sample call.
type Line struct {
	Speaker string `json:"speaker"` // "User" or "AI"
	Text    string `json:"text"`
	Lang    string `json:"lang,omitempty"` // locale; defaults to "en-US"
}

// AudioFetcher fetches relay audio for a line when no local voice exists
// (the TTS relay client in production).
type AudioFetcher interface {
	Fetch(ctx context.Context, text, lang string) ([]byte, error)
}

// AudioSink plays fetched audio bytes to completion.
type AudioSink interface {
	Play(ctx context.Context, audio []byte) error
}

// PlayerEvents reports playback progress. All fields may be nil.
type PlayerEvents struct {
	OnLine         func(index int, line Line)
	OnProgress     func(percent float64)
	OnVoiceMissing func(locale string)
}

// Player walks a scripted sample-call transcript. Each line is spoken with a
// matching local voice when one exists, otherwise relay audio is fetched and
// played. Playback errors pause for a fixed interval instead of failing so the
// transcript keeps advancing. A cancellation flag is checked between lines;
// Stop sets it and cancels any active synthesis.
type Player struct {
	engine  Engine
	fetcher AudioFetcher
	sink    AudioSink
	events  PlayerEvents

	// pause between lines and the stand-in for failed audio playback
	linePause time.Duration
	errPause  time.Duration

	cancelled atomic.Bool
}

// NewPlayer constructs a player. fetcher and sink may be nil when relay
// fallback is not wanted; missing-voice lines are then skipped after errPause.
func NewPlayer(engine Engine, fetcher AudioFetcher, sink AudioSink, events PlayerEvents) *Player {
	return &Player{
		engine:    engine,
		fetcher:   fetcher,
		sink:      sink,
		events:    events,
		linePause: 500 * time.Millisecond,
		errPause:  1500 * time.Millisecond,
	}
}

// Play runs the transcript to completion or until Stop/ctx cancellation.
func (p *Player) Play(ctx context.Context, transcript []Line) {
	p.cancelled.Store(false)

	var totalChars, spokenChars int
	for _, l := range transcript {
		totalChars += len(l.Text)
	}

	for i, line := range transcript {
		if p.cancelled.Load() || ctx.Err() != nil {
			break
		}
		if p.events.OnLine != nil {
			p.events.OnLine(i, line)
		}

		locale := line.Lang
		if locale == "" {
			locale = "en-US"
		}

		if voice, ok := SelectVoice(p.engine.Voices(), locale); ok {
			if err := p.engine.Speak(ctx, voice, line.Text); err != nil {
				log.Printf("player: synthesis failed: %v", err)
			}
		} else {
			if p.events.OnVoiceMissing != nil {
				p.events.OnVoiceMissing(locale)
			}
			p.playRelay(ctx, line.Text, locale)
		}

		spokenChars += len(line.Text)
		if p.events.OnProgress != nil && totalChars > 0 {
			p.events.OnProgress(float64(spokenChars) / float64(totalChars) * 100)
		}
		p.sleep(ctx, p.linePause)
	}
}

// playRelay fetches and plays relay audio; on any failure it waits errPause so
// the visualized transcript does not flash through the line.
func (p *Player) playRelay(ctx context.Context, text, locale string) {
	if p.fetcher == nil || p.sink == nil {
		p.sleep(ctx, p.errPause)
		return
	}
	lang := primarySubtag(locale)
	audio, err := p.fetcher.Fetch(ctx, text, lang)
	if err != nil {
		log.Printf("player: relay fetch failed: %v", err)
		p.sleep(ctx, p.errPause)
		return
	}
	if err := p.sink.Play(ctx, audio); err != nil {
		log.Printf("player: relay playback failed: %v", err)
		p.sleep(ctx, p.errPause)
	}
}

func (p *Player) sleep(ctx context.Context, d time.Duration) {
	if p.cancelled.Load() {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// Stop cancels playback: no further lines start and active synthesis is cut.
func (p *Player) Stop() {
	p.cancelled.Store(true)
	p.engine.Cancel()
}

// Stopped reports whether Stop has been called since the last Play.
func (p *Player) Stopped() bool { return p.cancelled.Load() }

// SampleTranscript is the scripted multilingual demo call played on the
// landing page.
func SampleTranscript() []Line {
	return []Line{
		{Speaker: "AI", Text: "Thank you for calling City General Hospital. How can I help you today?", Lang: "en-US"},
		{Speaker: "User", Text: "I'd like to book an appointment with Cardiology.", Lang: "en-US"},
		{Speaker: "AI", Text: "Dr. Reynolds has an opening tomorrow at 9 AM. Shall I book it?", Lang: "en-US"},
		{Speaker: "User", Text: "हाँ, कृपया बुक कर दीजिए।", Lang: "hi-IN"},
		{Speaker: "AI", Text: "ज़रूर, आपका अपॉइंटमेंट बुक हो गया है।", Lang: "hi-IN"},
		{Speaker: "AI", Text: "ధన్యవాదాలు! మీ అపాయింట్మెంట్ నిర్ధారించబడింది.", Lang: "te-IN"},
	}
}
