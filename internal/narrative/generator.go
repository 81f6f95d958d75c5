// Package narrative produces human-readable explanations for a served
// prediction, backed by the external text-generation service with
// deterministic canned fallbacks.
package narrative

import (
	"context"
	"time"

	apperrors "greenverify/internal/common/errors"
	"greenverify/internal/common/logger"
	"greenverify/internal/common/metrics"
	"greenverify/internal/genai"
	"greenverify/internal/models"
)

// defaultCallTimeout bounds a generation round trip when no timeout is
// configured.
const defaultCallTimeout = 30 * time.Second

// Generator builds prompts, submits them to the text-generation service and
// falls back to canned content on any failure. A nil client means the
// service is unavailable and every call serves fallback text. Every call is
// bounded by timeout; a stalled provider degrades to the fallback instead of
// stalling the request.
type Generator struct {
	client  genai.Client
	timeout time.Duration
	logger  logger.Logger
}

func NewGenerator(client genai.Client, timeout time.Duration, log logger.Logger) *Generator {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Generator{
		client:  client,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "narrative"}),
	}
}

// Available reports whether the text-generation service is configured.
func (g *Generator) Available() bool {
	return g.client != nil
}

// InitialAssessment produces the "Why This Rating?" text.
func (g *Generator) InitialAssessment(ctx context.Context, inputs map[string]interface{}, rating int) string {
	if g.client == nil {
		metrics.NarrativeCallsTotal.WithLabelValues("assessment", "fallback").Inc()
		return FallbackAssessment(rating)
	}

	text, err := g.generate(ctx, assessmentPrompt(inputs, rating))
	if err != nil {
		g.logger.Warn("assessment generation failed, serving fallback", map[string]interface{}{
			"rating": rating,
			"error":  err.Error(),
		})
		metrics.NarrativeCallsTotal.WithLabelValues("assessment", "fallback").Inc()
		return FallbackAssessment(rating)
	}

	metrics.NarrativeCallsTotal.WithLabelValues("assessment", "genai").Inc()
	return text
}

// Section produces one advisory section. Unknown section types are an error;
// generation failures are not and serve the canned table instead.
func (g *Generator) Section(ctx context.Context, inputs map[string]interface{}, rating int, sectionType string) (string, error) {
	prompt, ok := sectionPrompt(inputs, rating, sectionType)
	if !ok {
		return "", apperrors.NewInvalidSectionTypeError(sectionType)
	}

	if g.client == nil {
		metrics.NarrativeCallsTotal.WithLabelValues(sectionType, "fallback").Inc()
		return FallbackSection(sectionType, rating), nil
	}

	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("section generation failed, serving fallback", map[string]interface{}{
			"section": sectionType,
			"rating":  rating,
			"error":   err.Error(),
		})
		metrics.NarrativeCallsTotal.WithLabelValues(sectionType, "fallback").Inc()
		return FallbackSection(sectionType, rating), nil
	}

	metrics.NarrativeCallsTotal.WithLabelValues(sectionType, "genai").Inc()
	return text, nil
}

// Chat answers a free-text question and extracts follow-up suggestions.
func (g *Generator) Chat(ctx context.Context, inputs map[string]interface{}, rating int, question string) models.ChatAnswer {
	if g.client == nil {
		metrics.NarrativeCallsTotal.WithLabelValues("chat", "fallback").Inc()
		return models.ChatAnswer{
			Response:    chatOfflineResponse(rating),
			Suggestions: chatDefaultSuggestions,
		}
	}

	raw, err := g.generate(ctx, chatPrompt(inputs, rating, question))
	if err != nil {
		g.logger.Warn("chat generation failed, serving fallback", map[string]interface{}{
			"rating": rating,
			"error":  err.Error(),
		})
		metrics.NarrativeCallsTotal.WithLabelValues("chat", "fallback").Inc()
		return models.ChatAnswer{
			Response:    chatErrorResponse,
			Suggestions: chatDefaultSuggestions,
		}
	}

	metrics.NarrativeCallsTotal.WithLabelValues("chat", "genai").Inc()
	response, suggestions := ParseChatResponse(raw, rating)
	return models.ChatAnswer{Response: response, Suggestions: suggestions}
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.client.GenerateText(ctx, prompt)
	metrics.GenAIDuration.WithLabelValues(g.client.Provider()).Observe(time.Since(start).Seconds())
	return text, err
}
