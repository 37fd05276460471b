package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petal-labs/pigment/core"
)

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq orRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := orResponse{
			Model: "google/gemini-2.5-flash-image",
			Choices: []orChoice{{
				Message: orRespMessage{
					Role:   "assistant",
					Images: []orImage{{ImageURL: orImageURL{URL: "data:image/png;base64,aW1hZ2U="}}},
				},
			}},
			Usage: &orUsage{PromptTokens: 5, CompletionTokens: 9, TotalTokens: 14},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := New("test-key", WithBaseURL(server.URL))

	result, err := provider.Generate(context.Background(), &core.GenerationRequest{
		Prompt:      "a red circle",
		AspectRatio: "16:9",
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	blocks := gotReq.Messages[0].Content
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 (text + canvas)", len(blocks))
	}
	if !strings.Contains(blocks[0].Text, "a red circle") {
		t.Errorf("text block missing prompt: %q", blocks[0].Text)
	}
	if blocks[1].Type != "image_url" {
		t.Error("last block should be the canvas image_url")
	}

	if !result.Success {
		t.Error("Success = false")
	}
	if len(result.Images) != 1 || result.Images[0].Data != "aW1hZ2U=" {
		t.Errorf("images = %+v", result.Images)
	}
	if result.Usage.TotalTokens != 14 {
		t.Errorf("usage total = %d, want 14", result.Usage.TotalTokens)
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	provider := New("test-key")

	_, err := provider.Generate(context.Background(), &core.GenerationRequest{})
	if !errors.Is(err, core.ErrPromptRequired) {
		t.Errorf("err = %v, want ErrPromptRequired", err)
	}
}

func TestGenerateHTTPErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantSentinel error
		wantCode     string
	}{
		{
			name:         "unauthorized",
			status:       401,
			body:         `{"error":{"message":"invalid api key","type":"auth_error","code":"invalid_api_key"}}`,
			wantSentinel: core.ErrUnauthorized,
			wantCode:     "invalid_api_key",
		},
		{
			name:         "rate limited",
			status:       429,
			body:         `{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`,
			wantSentinel: core.ErrRateLimited,
			wantCode:     "rate_limit_error",
		},
		{
			name:         "model not found",
			status:       404,
			body:         `{"error":{"message":"no such model","type":"not_found_error"}}`,
			wantSentinel: core.ErrNotFound,
			wantCode:     "not_found_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-request-id", "req-123")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := New("test-key", WithBaseURL(server.URL))

			_, err := provider.Generate(context.Background(), &core.GenerationRequest{Prompt: "x"})
			if !errors.Is(err, tt.wantSentinel) {
				t.Errorf("err = %v, want %v", err, tt.wantSentinel)
			}

			var perr *core.ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("err type = %T, want *core.ProviderError", err)
			}
			if perr.Provider != "openrouter" {
				t.Errorf("Provider = %q, want openrouter", perr.Provider)
			}
			if perr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", perr.Code, tt.wantCode)
			}
			if perr.RequestID != "req-123" {
				t.Errorf("RequestID = %q, want req-123", perr.RequestID)
			}
		})
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	provider := New("test-key", WithBaseURL(server.URL))

	_, err := provider.Generate(context.Background(), &core.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, core.ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
}

func TestGenerateNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := New("test-key", WithBaseURL(server.URL))

	_, err := provider.Generate(context.Background(), &core.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
}

func TestAttributionHeaders(t *testing.T) {
	var gotReferer, gotTitle string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		json.NewEncoder(w).Encode(orResponse{})
	}))
	defer server.Close()

	provider := New("test-key",
		WithBaseURL(server.URL),
		WithAttribution("https://example.com/app", "Example App"),
	)

	if _, err := provider.Generate(context.Background(), &core.GenerationRequest{Prompt: "x"}); err != nil {
		t.Fatal(err)
	}

	if gotReferer != "https://example.com/app" {
		t.Errorf("HTTP-Referer = %q", gotReferer)
	}
	if gotTitle != "Example App" {
		t.Errorf("X-Title = %q", gotTitle)
	}
}
