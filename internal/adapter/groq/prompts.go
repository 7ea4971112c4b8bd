package groq

import (
	"fmt"
	"strings"
)

const summarizePromptTemplate = `Summarize this news article in 3 engaging sentences: %s`

const analysisPromptTemplate = `You are a careful media analyst. Assess the news article below and answer with a single JSON object and nothing else.

ARTICLE
Title: %s
Source: %s
Content:
---
%s
---

The JSON object must contain exactly these fields:
{
  "sentiment": "positive" | "negative" | "neutral",
  "sentimentScore": number from -1 (very negative) to 1 (very positive),
  "credibility": "high" | "medium" | "low",
  "credibilityScore": number from 0 (not credible) to 1 (highly credible),
  "bias": "left" | "center" | "right",
  "biasScore": number from -1 (strongly left) to 1 (strongly right),
  "reasoning": {
    "sentiment": one sentence explaining the sentiment,
    "credibility": one sentence explaining the credibility,
    "bias": one sentence explaining the bias
  }
}`

func buildSummarizePrompt(text string) string {
	return fmt.Sprintf(summarizePromptTemplate, text)
}

func buildAnalysisPrompt(title, source, content string) string {
	if strings.TrimSpace(source) == "" {
		source = "unknown"
	}
	return fmt.Sprintf(analysisPromptTemplate, strings.TrimSpace(title), strings.TrimSpace(source), content)
}
