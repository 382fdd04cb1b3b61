package tts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRelay_Fetch(t *testing.T) {
	var gotPath, gotUA, gotLang, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.URL.Query().Get("tl")
		gotText = r.URL.Query().Get("q")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	audio, err := c.Fetch(context.Background(), "hello there", "te")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("audio %q", audio)
	}
	if gotPath != "/translate_tts" {
		t.Fatalf("path %q", gotPath)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Fatalf("expected browser user agent, got %q", gotUA)
	}
	if gotLang != "te" || gotText != "hello there" {
		t.Fatalf("query tl=%q q=%q", gotLang, gotText)
	}
}

func TestRelay_EmptyTextNoUpstreamCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	if _, err := c.Fetch(context.Background(), "", "en"); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if called {
		t.Fatalf("upstream must not be called for empty text")
	}
}

func TestRelay_DefaultLang(t *testing.T) {
	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("tl")
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	if _, err := c.Fetch(context.Background(), "hi", ""); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotLang != "en" {
		t.Fatalf("expected default lang en, got %q", gotLang)
	}
}

func TestRelay_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	if _, err := c.Fetch(context.Background(), "hi", "en"); err == nil {
		t.Fatalf("expected error on non-200")
	}
}
