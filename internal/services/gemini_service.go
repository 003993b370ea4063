package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiTextModel  = "gemini-2.0-flash"
	geminiImageModel = "gemini-2.0-flash-exp-image-generation"
)

// GeminiService is a thin client for the Gemini generateContent REST API.
// Text generation and image generation run against separate models and,
// in deployment, separate API keys (one client per key).
type GeminiService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiService(apiKey string, timeout time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether this client carries an API key.
func (s *GeminiService) Configured() bool {
	return s.apiKey != ""
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	Temperature        *float64 `json:"temperature,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// InlineImage is binary image content returned by the image model.
type InlineImage struct {
	MimeType string
	Data     string // base64, as delivered by the provider
}

// GenerateText asks the text model for a JSON-formatted answer and returns
// the first candidate's text verbatim.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := 0.7
	resp, err := s.generate(ctx, geminiTextModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			Temperature:      &temperature,
		},
	})
	if err != nil {
		return "", err
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", ErrEmptyResponse
}

// GenerateImage asks the image model for an inline image. A nil result with
// a nil error means the model answered without image content.
func (s *GeminiService) GenerateImage(ctx context.Context, prompt string) (*InlineImage, error) {
	resp, err := s.generate(ctx, geminiImageModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return nil, err
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				mimeType := part.InlineData.MimeType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &InlineImage{MimeType: mimeType, Data: part.InlineData.Data}, nil
			}
		}
	}
	return nil, nil
}

func (s *GeminiService) generate(ctx context.Context, model string, payload geminiRequest) (*geminiResponse, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := strings.TrimSpace(string(responseBody))
		if isQuotaError(message) || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status %d", ErrQuotaExhausted, resp.StatusCode)
		}
		return nil, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, message)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if decoded.Error != nil {
		if isQuotaError(decoded.Error.Message) || decoded.Error.Status == "RESOURCE_EXHAUSTED" {
			return nil, fmt.Errorf("%w: %s", ErrQuotaExhausted, decoded.Error.Message)
		}
		return nil, fmt.Errorf("gemini: %s", decoded.Error.Message)
	}
	return &decoded, nil
}

// isQuotaError matches the provider's quota/rate-limit wording.
func isQuotaError(message string) bool {
	return strings.Contains(message, "RESOURCE_EXHAUSTED") || strings.Contains(strings.ToLower(message), "quota")
}
