package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type Credibility string

const (
	CredibilityHigh   Credibility = "high"
	CredibilityMedium Credibility = "medium"
	CredibilityLow    Credibility = "low"
)

type Bias string

const (
	BiasLeft   Bias = "left"
	BiasCenter Bias = "center"
	BiasRight  Bias = "right"
)

// AnalysisReasoning explains each of the three judgements in free text.
type AnalysisReasoning struct {
	Sentiment   string `json:"sentiment"`
	Credibility string `json:"credibility"`
	Bias        string `json:"bias"`
}

// ArticleAnalysis is the sentiment, credibility and bias assessment of one article.
type ArticleAnalysis struct {
	Sentiment        Sentiment         `json:"sentiment"`
	SentimentScore   float64           `json:"sentimentScore"`
	Credibility      Credibility       `json:"credibility"`
	CredibilityScore float64           `json:"credibilityScore"`
	Bias             Bias              `json:"bias"`
	BiasScore        float64           `json:"biasScore"`
	Reasoning        AnalysisReasoning `json:"reasoning"`
}

// FallbackAnalysis is returned whenever a model reply is missing or unusable.
func FallbackAnalysis() ArticleAnalysis {
	return ArticleAnalysis{
		Sentiment:        SentimentNeutral,
		SentimentScore:   0,
		Credibility:      CredibilityMedium,
		CredibilityScore: 0.5,
		Bias:             BiasCenter,
		BiasScore:        0,
		Reasoning: AnalysisReasoning{
			Sentiment:   "Automated sentiment analysis is unavailable for this article; showing a neutral default.",
			Credibility: "Automated credibility assessment is unavailable; verify the source independently.",
			Bias:        "Automated bias detection is unavailable; no political lean is assumed.",
		},
	}
}

var ErrInvalidAnalysis = errors.New("invalid article analysis")

// Validate checks enum membership, score ranges and that every reasoning string is present.
func (a ArticleAnalysis) Validate() error {
	var problems []string

	switch a.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		problems = append(problems, fmt.Sprintf("sentiment %q", a.Sentiment))
	}
	switch a.Credibility {
	case CredibilityHigh, CredibilityMedium, CredibilityLow:
	default:
		problems = append(problems, fmt.Sprintf("credibility %q", a.Credibility))
	}
	switch a.Bias {
	case BiasLeft, BiasCenter, BiasRight:
	default:
		problems = append(problems, fmt.Sprintf("bias %q", a.Bias))
	}

	if a.SentimentScore < -1 || a.SentimentScore > 1 {
		problems = append(problems, fmt.Sprintf("sentimentScore %v", a.SentimentScore))
	}
	if a.CredibilityScore < 0 || a.CredibilityScore > 1 {
		problems = append(problems, fmt.Sprintf("credibilityScore %v", a.CredibilityScore))
	}
	if a.BiasScore < -1 || a.BiasScore > 1 {
		problems = append(problems, fmt.Sprintf("biasScore %v", a.BiasScore))
	}

	if strings.TrimSpace(a.Reasoning.Sentiment) == "" ||
		strings.TrimSpace(a.Reasoning.Credibility) == "" ||
		strings.TrimSpace(a.Reasoning.Bias) == "" {
		problems = append(problems, "reasoning incomplete")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidAnalysis, strings.Join(problems, ", "))
	}
	return nil
}
