package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BruksfildServices01/health-portal/internal/config"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	body := []byte("hello")
	if err := m.Put(ctx, "files/u1/a.txt", "text/plain", body); err != nil {
		t.Fatalf("put: %v", err)
	}
	body[0] = 'j'

	rc, err := m.Get(ctx, "files/u1/a.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" {
		t.Errorf("expected stored copy, got %q", data)
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestS3Store_PathStyleEndpoint(t *testing.T) {
	var gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewS3(&config.Config{
		S3Bucket:    "portal",
		S3Region:    "us-east-1",
		S3Endpoint:  srv.URL,
		S3AccessKey: "key",
		S3SecretKey: "secret",
	})

	if err := s.Put(context.Background(), "files/u1/report.pdf", "application/pdf", []byte("%PDF")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(gotPath, "/portal/files/u1/report.pdf") {
		t.Errorf("expected path-style request, got %s", gotPath)
	}
	if gotType != "application/pdf" {
		t.Errorf("expected content type forwarded, got %s", gotType)
	}
}
