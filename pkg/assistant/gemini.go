package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel    = "gemini-1.5-flash"
	completionTimeout     = 15 * time.Second
)

// CompletionOptions bound a single text-completion call
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
	ForceJSON   bool
}

// CompletionClient is the text-completion backend contract. A nil client is a
// valid, detected state: the classifier degrades to clarification responses.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// GeminiClient calls the Gemini generateContent REST API
type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// NewGeminiClientFromEnv builds a client from GEMINI_API_KEY. Returns nil when
// the key is not configured, which callers must treat as "feature disabled",
// not as an error.
func NewGeminiClientFromEnv(log logger.Logger) *GeminiClient {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGeminiModel
	}

	endpoint := os.Getenv("GEMINI_API_URL")
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}

	return &GeminiClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: completionTimeout},
		logger:   log,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Complete sends one generateContent request and returns the concatenated
// candidate text
func (g *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userPrompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}
	if opts.ForceJSON {
		reqBody.GenerationConfig.ResponseMimeType = "application/json"
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error serializing completion request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqJSON))
	if err != nil {
		return "", fmt.Errorf("error creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling completion backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("completion backend returned error",
			"status", resp.Status,
			"body", string(respBody))
		return "", fmt.Errorf("completion backend error: %s", resp.Status)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("error decoding completion response: %w", err)
	}

	text := ""
	for _, candidate := range apiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
		break
	}

	if text == "" {
		return "", fmt.Errorf("completion backend returned no text")
	}

	return text, nil
}
