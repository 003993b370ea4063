package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"
	openAISpeechURL   = "https://api.openai.com/v1/audio/speech"

	// Documented input ceilings per provider.
	elevenLabsMaxChars = 5000
	openAIMaxChars     = 4096
)

// SpeechResult is synthesized audio ready to stream to the client.
type SpeechResult struct {
	Audio       []byte
	ContentType string
}

// SpeechService synthesizes speech through a fixed provider chain:
// ElevenLabs first, then OpenAI TTS. Each attempt fails silently; only
// when the whole chain is exhausted does the caller see an error, and that
// error means "use the on-device voice".
type SpeechService struct {
	elevenLabsKey   string
	elevenLabsVoice string
	openAIKey       string

	elevenLabsURL string
	openAIURL     string
	httpClient    *http.Client
}

func NewSpeechService(elevenLabsKey, elevenLabsVoice, openAIKey string, timeout time.Duration) *SpeechService {
	return &SpeechService{
		elevenLabsKey:   elevenLabsKey,
		elevenLabsVoice: elevenLabsVoice,
		openAIKey:       openAIKey,
		elevenLabsURL:   elevenLabsBaseURL,
		openAIURL:       openAISpeechURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Synthesize returns audio from the first provider that succeeds, or
// ErrNoSpeechProvider when the chain is exhausted.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (*SpeechResult, error) {
	if s.elevenLabsKey != "" {
		result, err := s.synthesizeElevenLabs(ctx, text)
		if err == nil {
			return result, nil
		}
		log.Printf("elevenlabs synthesis failed: %v", err)
	}

	if s.openAIKey != "" {
		result, err := s.synthesizeOpenAI(ctx, text)
		if err == nil {
			return result, nil
		}
		log.Printf("openai tts synthesis failed: %v", err)
	}

	return nil, ErrNoSpeechProvider
}

func (s *SpeechService) synthesizeElevenLabs(ctx context.Context, text string) (*SpeechResult, error) {
	payload := map[string]any{
		"text":     truncate(text, elevenLabsMaxChars),
		"model_id": "eleven_monolingual_v1",
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal elevenlabs payload: %w", err)
	}

	url := s.elevenLabsURL + "/" + s.elevenLabsVoice
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build elevenlabs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.elevenLabsKey)

	return s.fetchAudio(req, "elevenlabs")
}

func (s *SpeechService) synthesizeOpenAI(ctx context.Context, text string) (*SpeechResult, error) {
	payload := map[string]string{
		"model":           "tts-1",
		"input":           truncate(text, openAIMaxChars),
		"voice":           "alloy",
		"response_format": "mp3",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal openai payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.openAIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.openAIKey)

	return s.fetchAudio(req, "openai")
}

func (s *SpeechService) fetchAudio(req *http.Request, provider string) (*SpeechResult, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%s: status %d: %s", provider, resp.StatusCode, bytes.TrimSpace(errBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s audio: %w", provider, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%s returned empty audio", provider)
	}

	return &SpeechResult{Audio: audio, ContentType: "audio/mpeg"}, nil
}

// truncate caps text at max bytes without cutting a UTF-8 sequence in two.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
