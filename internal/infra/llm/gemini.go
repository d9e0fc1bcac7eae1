package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

var (
	ErrNotConfigured = errors.New("llm api key not configured")
	ErrEmptyReply    = errors.New("llm returned no text")
)

// Gemini calls the generateContent REST endpoint.
type Gemini struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewGemini(baseURL, apiKey, model string) *Gemini {
	return &Gemini{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Gemini) Generate(ctx context.Context, system string, turns []models.ChatMessage) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	body := generateRequest{Contents: make([]content, 0, len(turns))}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	for _, t := range turns {
		role := "user"
		if t.Role == models.ChatRoleAssistant {
			role = "model"
		}
		body.Contents = append(body.Contents, content{Role: role, Parts: []part{{Text: t.Content}}})
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	var out generateResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decode llm response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("llm error %d: %s", out.Error.Code, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm status %d", resp.StatusCode)
	}

	for _, c := range out.Candidates {
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyReply
}
