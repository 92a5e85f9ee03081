// Package llm wraps the external completion API used by the campaign chat
// assistant. Callers depend on the Completer interface; GeminiClient is the
// production implementation backed by Google's Generative AI SDK.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/mhd0331/JinanCampaign/internal/config"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gemini-1.5-flash-latest"

	defaultTemperature = float32(0.7)
	defaultMaxTokens   = int32(1000)
)

// ErrEmptyCompletion is returned when the upstream answered without any text.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Completer produces one completion for a system instruction and a user
// message. Implementations must honour ctx cancellation.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// generateFunc performs the upstream call. It is a field so tests can replace
// the network round trip.
type generateFunc func(ctx context.Context, system, user string) (*genai.GenerateContentResponse, error)

// GeminiClient is a Completer backed by the Gemini API. Outbound calls pass a
// token-bucket limiter first so bursts of chat traffic stay inside the
// upstream quota; the wait is bounded by the caller's context.
type GeminiClient struct {
	client   *genai.Client
	model    string
	limiter  *rate.Limiter
	generate generateFunc
}

// NewGeminiClient dials the Gemini API with cfg.APIKey. The returned client
// must be closed with Close.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	g := &GeminiClient{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), burst),
	}
	g.generate = g.generateGemini
	return g, nil
}

// Complete sends one request and returns the concatenated text parts of the
// first candidate.
func (g *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm: throttled: %w", err)
		}
	}
	resp, err := g.generate(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}
	return responseText(resp)
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiClient) generateGemini(ctx context.Context, system, user string) (*genai.GenerateContentResponse, error) {
	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	temp := defaultTemperature
	maxTokens := defaultMaxTokens
	m.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens:  &maxTokens,
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
	return m.GenerateContent(ctx, genai.Text(user))
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyCompletion
	}
	return b.String(), nil
}
