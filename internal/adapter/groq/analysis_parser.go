package groq

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hridaya423/newster/internal/domain"
)

type reasoningWire struct {
	Sentiment   *string `json:"sentiment"`
	Credibility *string `json:"credibility"`
	Bias        *string `json:"bias"`
}

// analysisWire uses pointers so absent fields can be told apart from zero values.
type analysisWire struct {
	Sentiment        *string        `json:"sentiment"`
	SentimentScore   *float64       `json:"sentimentScore"`
	Credibility      *string        `json:"credibility"`
	CredibilityScore *float64       `json:"credibilityScore"`
	Bias             *string        `json:"bias"`
	BiasScore        *float64       `json:"biasScore"`
	Reasoning        *reasoningWire `json:"reasoning"`
}

// parseAnalysis decodes a model reply into a validated analysis.
// The reply must be one JSON object, optionally inside a markdown code fence.
func parseAnalysis(raw string) (domain.ArticleAnalysis, error) {
	trimmed := stripCodeFence(strings.TrimSpace(raw))
	if trimmed == "" {
		return domain.ArticleAnalysis{}, errors.New("analysis reply is empty")
	}

	var wire analysisWire
	if err := json.Unmarshal([]byte(trimmed), &wire); err != nil {
		return domain.ArticleAnalysis{}, fmt.Errorf("failed to parse analysis reply: %w", err)
	}

	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("sentiment", wire.Sentiment != nil)
	check("sentimentScore", wire.SentimentScore != nil)
	check("credibility", wire.Credibility != nil)
	check("credibilityScore", wire.CredibilityScore != nil)
	check("bias", wire.Bias != nil)
	check("biasScore", wire.BiasScore != nil)
	check("reasoning", wire.Reasoning != nil)
	if wire.Reasoning != nil {
		check("reasoning.sentiment", wire.Reasoning.Sentiment != nil)
		check("reasoning.credibility", wire.Reasoning.Credibility != nil)
		check("reasoning.bias", wire.Reasoning.Bias != nil)
	}
	if len(missing) > 0 {
		return domain.ArticleAnalysis{}, fmt.Errorf("analysis reply missing required fields: %s", strings.Join(missing, ", "))
	}

	analysis := domain.ArticleAnalysis{
		Sentiment:        domain.Sentiment(normalizeLabel(*wire.Sentiment)),
		SentimentScore:   *wire.SentimentScore,
		Credibility:      domain.Credibility(normalizeLabel(*wire.Credibility)),
		CredibilityScore: *wire.CredibilityScore,
		Bias:             domain.Bias(normalizeLabel(*wire.Bias)),
		BiasScore:        *wire.BiasScore,
		Reasoning: domain.AnalysisReasoning{
			Sentiment:   strings.TrimSpace(*wire.Reasoning.Sentiment),
			Credibility: strings.TrimSpace(*wire.Reasoning.Credibility),
			Bias:        strings.TrimSpace(*wire.Reasoning.Bias),
		},
	}

	if err := analysis.Validate(); err != nil {
		return domain.ArticleAnalysis{}, err
	}
	return analysis, nil
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
