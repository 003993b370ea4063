package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func geminiTestService(t *testing.T, handler http.HandlerFunc) (*GeminiService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service := NewGeminiService("test-key", 5*time.Second)
	service.baseURL = server.URL
	return service, server
}

func TestGenerateTextReturnsFirstCandidate(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `{"ok": true}`}}}},
			},
		})
	})

	text, err := service.GenerateText(context.Background(), "make a plan")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != `{"ok": true}` {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.Contains(gotPath, "gemini-2.0-flash:generateContent") {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotBody.GenerationConfig == nil || gotBody.GenerationConfig.ResponseMimeType != "application/json" {
		t.Error("request did not ask for JSON output")
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "make a plan" {
		t.Error("prompt not carried in request body")
	}
}

func TestGenerateTextWithoutKeyNeverCallsProvider(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	service := NewGeminiService("", 5*time.Second)
	service.baseURL = server.URL

	_, err := service.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	if called {
		t.Fatal("provider was called despite missing key")
	}
}

func TestGenerateTextQuotaErrorIsDistinguished(t *testing.T) {
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := service.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

func TestGenerateTextEmptyCandidatesIsEmptyResponse(t *testing.T) {
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := service.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateTextServerErrorIsGenericFailure(t *testing.T) {
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := service.GenerateText(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrQuotaExhausted) || errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("generic failure misclassified: %v", err)
	}
}

func TestGenerateImageReturnsInlineData(t *testing.T) {
	var gotPath string
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "here you go"},
					{"inlineData": map[string]any{"mimeType": "image/jpeg", "data": "aGVsbG8="}},
				}}},
			},
		})
	})

	image, err := service.GenerateImage(context.Background(), "Push Up")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if image == nil {
		t.Fatal("expected inline image")
	}
	if image.MimeType != "image/jpeg" || image.Data != "aGVsbG8=" {
		t.Fatalf("unexpected image %+v", image)
	}
	if !strings.Contains(gotPath, "gemini-2.0-flash-exp-image-generation:generateContent") {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestGenerateImageWithoutImagePartsReturnsNil(t *testing.T) {
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "no image today"}}}},
			},
		})
	})

	image, err := service.GenerateImage(context.Background(), "Push Up")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if image != nil {
		t.Fatalf("expected nil image, got %+v", image)
	}
}

func TestGenerateImageDefaultsMimeTypeToPNG(t *testing.T) {
	service, _ := geminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"inlineData": map[string]any{"data": "aGVsbG8="}},
				}}},
			},
		})
	})

	image, err := service.GenerateImage(context.Background(), "Push Up")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if image.MimeType != "image/png" {
		t.Fatalf("expected png default, got %q", image.MimeType)
	}
}
