package groq

import (
	"testing"

	"github.com/hridaya423/newster/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{
  "sentiment": "Negative",
  "sentimentScore": -0.4,
  "credibility": "high",
  "credibilityScore": 0.85,
  "bias": "center",
  "biasScore": 0.05,
  "reasoning": {
    "sentiment": "Reports job losses.",
    "credibility": "Cites official statistics.",
    "bias": "Balanced sourcing."
  }
}`

func TestParseAnalysis_Valid(t *testing.T) {
	got, err := parseAnalysis(validReply)
	require.NoError(t, err)

	assert.Equal(t, domain.SentimentNegative, got.Sentiment)
	assert.Equal(t, -0.4, got.SentimentScore)
	assert.Equal(t, domain.CredibilityHigh, got.Credibility)
	assert.Equal(t, domain.BiasCenter, got.Bias)
	assert.Equal(t, "Balanced sourcing.", got.Reasoning.Bias)
}

func TestParseAnalysis_CodeFence(t *testing.T) {
	got, err := parseAnalysis("```json\n" + validReply + "\n```")
	require.NoError(t, err)
	assert.Equal(t, 0.85, got.CredibilityScore)
}

func TestParseAnalysis_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr string
	}{
		{name: "empty", reply: "   ", wantErr: "empty"},
		{name: "prose", reply: "The article seems fairly neutral overall.", wantErr: "failed to parse"},
		{name: "trailing prose", reply: validReply + " hope this helps", wantErr: "failed to parse"},
		{name: "bare fence", reply: "```", wantErr: "empty"},
		{
			name:    "missing score",
			reply:   `{"sentiment":"neutral","credibility":"low","credibilityScore":0.2,"bias":"left","biasScore":-0.5,"reasoning":{"sentiment":"a","credibility":"b","bias":"c"}}`,
			wantErr: "sentimentScore",
		},
		{
			name:    "missing reasoning",
			reply:   `{"sentiment":"neutral","sentimentScore":0,"credibility":"low","credibilityScore":0.2,"bias":"left","biasScore":-0.5}`,
			wantErr: "reasoning",
		},
		{
			name:    "score as string",
			reply:   `{"sentiment":"neutral","sentimentScore":"0","credibility":"low","credibilityScore":0.2,"bias":"left","biasScore":-0.5,"reasoning":{"sentiment":"a","credibility":"b","bias":"c"}}`,
			wantErr: "failed to parse",
		},
		{
			name:    "out of range",
			reply:   `{"sentiment":"neutral","sentimentScore":0,"credibility":"low","credibilityScore":3,"bias":"left","biasScore":-0.5,"reasoning":{"sentiment":"a","credibility":"b","bias":"c"}}`,
			wantErr: "credibilityScore",
		},
		{
			name:    "unknown label",
			reply:   `{"sentiment":"mixed","sentimentScore":0,"credibility":"low","credibilityScore":0.2,"bias":"left","biasScore":-0.5,"reasoning":{"sentiment":"a","credibility":"b","bias":"c"}}`,
			wantErr: "sentiment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnalysis(tt.reply)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	p := buildAnalysisPrompt("  Title  ", "", "body text")
	assert.Contains(t, p, "Title: Title\n")
	assert.Contains(t, p, "Source: unknown")
	assert.Contains(t, p, "body text")

	assert.Equal(t, "Summarize this news article in 3 engaging sentences: hello", buildSummarizePrompt("hello"))
}
