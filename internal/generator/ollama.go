package generator

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

// OllamaConfig holds the connection settings for an Ollama LLM server.
type OllamaConfig struct {
	BaseURL string        // e.g. "http://ollama.example.com:11434"
	Model   string        // e.g. "llama3:8b"
	APIKey  string        // optional bearer token
	Timeout time.Duration // request timeout (default: 60 seconds)
}

// OllamaGenerator produces titles and scripts through an Ollama server.
// It satisfies TextGenerator, so it can replace the template generator
// wherever richer output is wanted.
type OllamaGenerator struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewOllamaGenerator creates an Ollama-backed generator.
func NewOllamaGenerator(config OllamaConfig) *OllamaGenerator {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &OllamaGenerator{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		model:   config.Model,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// ollamaGenerateRequest is the payload for the /api/generate endpoint.
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"` // "json" for structured output
	Stream bool   `json:"stream"`
}

// ollamaGenerateResponse is the non-streaming /api/generate response.
type ollamaGenerateResponse struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Response  string    `json:"response"`
	Done      bool      `json:"done"`
}

// Titles asks the model for count title variations as a JSON array.
func (g *OllamaGenerator) Titles(ctx context.Context, keyword, language, emotion string, count int) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	if count <= 0 {
		count = defaultTitleCount
	}
	if count > maxTitleCount {
		count = maxTitleCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d YouTube video titles for the topic %q.\n", count, keyword)
	if language != "" {
		fmt.Fprintf(&b, "Write the titles in the language with code %q.\n", language)
	}
	if emotion != "" {
		fmt.Fprintf(&b, "The titles should evoke %s.\n", emotion)
	}
	b.WriteString(`Respond with JSON: {"titles": ["...", "..."]}`)

	raw, err := g.generate(ctx, b.String(), "json")
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if len(parsed.Titles) == 0 {
		return nil, fmt.Errorf("model returned no titles")
	}
	if len(parsed.Titles) > count {
		parsed.Titles = parsed.Titles[:count]
	}
	return parsed.Titles, nil
}

// Script asks the model for a full script outline as plain text.
func (g *OllamaGenerator) Script(ctx context.Context, keyword, language, tone string, durationMinutes int) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", fmt.Errorf("keyword is required")
	}
	if durationMinutes <= 0 {
		durationMinutes = 8
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a YouTube video script outline for the topic %q.\n", keyword)
	fmt.Fprintf(&b, "Target length: %d minutes (about %d words).\n", durationMinutes, durationMinutes*150)
	if language != "" {
		fmt.Fprintf(&b, "Write in the language with code %q.\n", language)
	}
	if tone != "" {
		fmt.Fprintf(&b, "Use a %s tone.\n", tone)
	}
	b.WriteString("Structure: hook, intro, context, main points, common mistakes, call to action.")

	script, err := g.generate(ctx, b.String(), "")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(script) == "" {
		return "", fmt.Errorf("model returned an empty script")
	}
	return script, nil
}

// generate calls the Ollama /api/generate endpoint and returns the raw
// model output.
func (g *OllamaGenerator) generate(ctx context.Context, prompt, format string) (string, error) {
	reqPayload := ollamaGenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Format: format,
		Stream: false,
	}

	reqBody, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to Ollama failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return genResp.Response, nil
}
