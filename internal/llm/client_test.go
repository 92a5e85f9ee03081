package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/mhd0331/JinanCampaign/internal/config"
)

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func fakeClient(limiter *rate.Limiter, gen generateFunc) *GeminiClient {
	return &GeminiClient{model: DefaultModel, limiter: limiter, generate: gen}
}

func TestComplete_JoinsTextParts(t *testing.T) {
	var gotSystem, gotUser string
	g := fakeClient(rate.NewLimiter(rate.Inf, 1), func(_ context.Context, system, user string) (*genai.GenerateContentResponse, error) {
		gotSystem, gotUser = system, user
		return textResponse(genai.Text(`{"response":`), genai.Blob{MIMEType: "image/png"}, genai.Text(`"hi"}`)), nil
	})

	out, err := g.Complete(context.Background(), "persona", "질문")
	require.NoError(t, err)
	assert.Equal(t, `{"response":"hi"}`, out)
	assert.Equal(t, "persona", gotSystem)
	assert.Equal(t, "질문", gotUser)
}

func TestComplete_EmptyAndErrors(t *testing.T) {
	empty := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		textResponse(),
		textResponse(genai.Text("   ")),
	}
	for i, resp := range empty {
		r := resp
		g := fakeClient(nil, func(context.Context, string, string) (*genai.GenerateContentResponse, error) { return r, nil })
		_, err := g.Complete(context.Background(), "s", "u")
		assert.ErrorIs(t, err, ErrEmptyCompletion, "case %d", i)
	}

	boom := errors.New("quota exceeded")
	g := fakeClient(nil, func(context.Context, string, string) (*genai.GenerateContentResponse, error) { return nil, boom })
	_, err := g.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, boom)
}

func TestComplete_ThrottleRespectsContext(t *testing.T) {
	calls := 0
	g := fakeClient(rate.NewLimiter(rate.Every(time.Hour), 1), func(context.Context, string, string) (*genai.GenerateContentResponse, error) {
		calls++
		return textResponse(genai.Text("{}")), nil
	})

	_, err := g.Complete(context.Background(), "s", "u")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.Complete(ctx, "s", "u")
	require.Error(t, err, "second call must wait for a token and give up with the context")
	assert.Equal(t, 1, calls)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), config.LLMConfig{APIKey: "  "})
	require.Error(t, err)
}

func TestClose_Nil(t *testing.T) {
	var g *GeminiClient
	assert.NoError(t, g.Close())
	assert.NoError(t, (&GeminiClient{}).Close())
}
