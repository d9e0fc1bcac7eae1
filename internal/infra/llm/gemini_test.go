package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

func TestGenerate_SendsTranscriptAndReadsReply(t *testing.T) {
	var got generateRequest
	var gotPath, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Drink water "},{"text":"and rest."}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(srv.URL, "k-123", "gemini-test")
	reply, err := g.Generate(context.Background(), "be careful", []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "I have a headache"},
		{Role: models.ChatRoleAssistant, Content: "Since when?"},
		{Role: models.ChatRoleUser, Content: "Yesterday"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Drink water and rest." {
		t.Errorf("unexpected reply %q", reply)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" || gotKey != "k-123" {
		t.Errorf("unexpected endpoint %s key=%s", gotPath, gotKey)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be careful" {
		t.Errorf("expected system instruction, got %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 3 || got.Contents[1].Role != "model" {
		t.Errorf("expected 3 turns with model role mapped, got %+v", got.Contents)
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := NewGemini("http://unused", "", "m").Generate(context.Background(), "", nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := NewGemini(srv.URL, "k", "m").Generate(context.Background(), "", []models.ChatMessage{{Role: "user", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected upstream message in error, got %v", err)
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer empty.Close()

	_, err = NewGemini(empty.URL, "k", "m").Generate(context.Background(), "", nil)
	if !errors.Is(err, ErrEmptyReply) {
		t.Errorf("expected ErrEmptyReply, got %v", err)
	}
}
