package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitchallenge/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrContentGeneration wraps every failure to obtain text from the model.
var ErrContentGeneration = errors.New("content generation failed")

// ContentGenerator sends one prompt and returns the model's text answer.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// generativeModel is the part of *genai.GenerativeModel the client uses.
type generativeModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiConnectProps struct {
	APIKey    string
	ModelName string
	Logger    *logger.LogMiddleware
}

type Gemini struct {
	logger    *logger.LogMiddleware
	client    *genai.Client
	model     generativeModel
	modelName string
}

// Connect creates a Gemini client for a single model. There are no retries: the
// caller bounds latency through ctx.
func Connect(ctx context.Context, args GeminiConnectProps) (*Gemini, error) {
	tracer := otel.Tracer("llm/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()
	args.Logger.Logger(ctx).Info("[GeminiAPI] Connecting Gemini API client", zap.String("model", args.ModelName))

	client, err := genai.NewClient(ctx, option.WithAPIKey(args.APIKey))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		logger:    args.Logger,
		client:    client,
		model:     client.GenerativeModel(args.ModelName),
		modelName: args.ModelName,
	}, nil
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// GenerateContent returns the concatenated text parts of the first candidate.
func (g *Gemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("llm/GenerateContent")
	ctx, span := tracer.Start(ctx, "GenerateContent")
	defer span.End()

	span.SetAttributes(
		attribute.String("model", g.modelName),
		attribute.Int("prompt.length", len(prompt)),
	)
	g.logger.Logger(ctx).Info("[GeminiAPI] GenerateContent called", zap.Int("prompt.length", len(prompt)))

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logger.Logger(ctx).Error("[GeminiAPI] Error generating LLM content", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrContentGeneration, err)
	}

	text, ok := firstCandidateText(resp)
	if !ok {
		span.AddEvent("EmptyResponse")
		span.SetStatus(codes.Error, "empty response")
		g.logger.Logger(ctx).Warn("[GeminiAPI] Received empty or invalid LLM response")
		return "", fmt.Errorf("%w: model returned no candidates", ErrContentGeneration)
	}

	g.logger.Logger(ctx).Info("[GeminiAPI] LLM generation successful",
		zap.Int("response.length", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), true
}
