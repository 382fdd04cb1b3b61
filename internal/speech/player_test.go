package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, text, lang string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, lang)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3"), nil
}

type fakeSink struct {
	mu     sync.Mutex
	played int
}

func (f *fakeSink) Play(ctx context.Context, audio []byte) error {
	f.mu.Lock()
	f.played++
	f.mu.Unlock()
	return nil
}

func fastPlayer(engine Engine, fetcher AudioFetcher, sink AudioSink, ev PlayerEvents) *Player {
	p := NewPlayer(engine, fetcher, sink, ev)
	p.linePause = time.Millisecond
	p.errPause = time.Millisecond
	return p
}

func TestPlayer_LocalVoicePath(t *testing.T) {
	eng := &fakeEngine{voices: []Voice{{Name: "Samantha", Lang: "en-US"}}}
	var progress []float64
	p := fastPlayer(eng, nil, nil, PlayerEvents{OnProgress: func(pct float64) { progress = append(progress, pct) }})

	p.Play(context.Background(), []Line{
		{Speaker: "AI", Text: "Hello.", Lang: "en-US"},
		{Speaker: "User", Text: "Hi.", Lang: "en-US"},
	})

	eng.mu.Lock()
	spoken := len(eng.spoken)
	eng.mu.Unlock()
	if spoken != 2 {
		t.Fatalf("expected 2 spoken lines, got %d", spoken)
	}
	if len(progress) != 2 || progress[len(progress)-1] != 100 {
		t.Fatalf("progress %v", progress)
	}
}

func TestPlayer_RelayFallbackOnVoiceMiss(t *testing.T) {
	eng := &fakeEngine{voices: []Voice{{Name: "Samantha", Lang: "en-US"}}}
	fetcher := &fakeFetcher{}
	sink := &fakeSink{}
	var missing []string
	p := fastPlayer(eng, fetcher, sink, PlayerEvents{OnVoiceMissing: func(loc string) { missing = append(missing, loc) }})

	p.Play(context.Background(), []Line{{Speaker: "AI", Text: "నమస్కారం", Lang: "te-IN"}})

	if len(missing) != 1 || missing[0] != "te-IN" {
		t.Fatalf("missing=%v", missing)
	}
	fetcher.mu.Lock()
	calls := fetcher.calls
	fetcher.mu.Unlock()
	// relay wants the primary subtag, not the full locale
	if len(calls) != 1 || calls[0] != "te" {
		t.Fatalf("fetch calls %v", calls)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.played != 1 {
		t.Fatalf("expected relay audio played once, got %d", sink.played)
	}
}

func TestPlayer_FetchErrorKeepsAdvancing(t *testing.T) {
	eng := &fakeEngine{}
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	var lines []int
	p := fastPlayer(eng, fetcher, &fakeSink{}, PlayerEvents{OnLine: func(i int, _ Line) { lines = append(lines, i) }})

	p.Play(context.Background(), []Line{
		{Speaker: "AI", Text: "one", Lang: "te-IN"},
		{Speaker: "AI", Text: "two", Lang: "te-IN"},
	})
	if len(lines) != 2 {
		t.Fatalf("expected both lines visited, got %v", lines)
	}
}

func TestPlayer_StopBetweenLines(t *testing.T) {
	eng := &fakeEngine{voices: []Voice{{Name: "Samantha", Lang: "en-US"}}}
	p := fastPlayer(eng, nil, nil, PlayerEvents{})
	p.events.OnLine = func(i int, _ Line) {
		if i == 0 {
			p.Stop()
		}
	}

	p.Play(context.Background(), []Line{
		{Speaker: "AI", Text: "one", Lang: "en-US"},
		{Speaker: "AI", Text: "two", Lang: "en-US"},
		{Speaker: "AI", Text: "three", Lang: "en-US"},
	})

	eng.mu.Lock()
	defer eng.mu.Unlock()
	if len(eng.spoken) != 1 {
		t.Fatalf("expected playback to stop after first line, spoke %v", eng.spoken)
	}
	if eng.cancels == 0 {
		t.Fatalf("expected active synthesis cancelled on stop")
	}
	if !p.Stopped() {
		t.Fatalf("expected stopped flag set")
	}
}

func TestSampleTranscript_NotEmpty(t *testing.T) {
	lines := SampleTranscript()
	if len(lines) == 0 {
		t.Fatalf("expected scripted transcript")
	}
	for _, l := range lines {
		if l.Text == "" || l.Speaker == "" {
			t.Fatalf("bad line %+v", l)
		}
	}
}
