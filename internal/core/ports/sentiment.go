package ports

import "context"

// SentimentInput is one nominee write-up to annotate.
type SentimentInput struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// SentimentResult is the model's annotation for one input.
type SentimentResult struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"` // Positive, Neutral or Negative
}

// SentimentAnalyzer calls the language model. Implementations return an
// error on any failure; callers degrade to placeholder text and must never
// let the failure reach the request path.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, inputs []SentimentInput) ([]SentimentResult, error)
}

// CandidateInsight is one nominee's aggregated AI annotation.
type CandidateInsight struct {
	NominationID string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Nominations  int64  `json:"votes"`
	Summary      string `json:"summary"`
	Sentiment    string `json:"sentiment"`
	Status       string `json:"status"`
}

// InsightService aggregates submitted nominations per nominee and annotates
// them with summaries and sentiment.
type InsightService interface {
	CandidateInsights(ctx context.Context) ([]CandidateInsight, error)
}
