package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const (
	summaryPending   = "Analysis Pending..."
	sentimentNeutral = "Neutral"
)

type insightService struct {
	noms     ports.NominationRepository
	analyzer ports.SentimentAnalyzer
	log      zerolog.Logger
}

// NewInsightService returns the InsightService that annotates submitted
// nominations with model-generated summaries and sentiment.
func NewInsightService(noms ports.NominationRepository, analyzer ports.SentimentAnalyzer, log zerolog.Logger) ports.InsightService {
	return &insightService{noms: noms, analyzer: analyzer, log: log}
}

type candidateGroup struct {
	firstNominationID string
	name              string
	email             string
	details           []string
	count             int64
}

// CandidateInsights groups submitted nominations per nominee, asks the model
// for a summary and sentiment per group, and degrades to placeholder text on
// any model failure.
func (s *insightService) CandidateInsights(ctx context.Context) ([]ports.CandidateInsight, error) {
	noms, err := s.noms.ListByStatus(ctx, []domain.Status{domain.StatusSubmitted})
	if err != nil {
		return nil, fmt.Errorf("candidate insights: %w", err)
	}
	if len(noms) == 0 {
		return []ports.CandidateInsight{}, nil
	}

	groups := make(map[string]*candidateGroup)
	var order []string
	for _, n := range noms {
		g, ok := groups[n.NomineeID]
		if !ok {
			g = &candidateGroup{firstNominationID: n.ID}
			if n.Nominee != nil {
				g.name = n.Nominee.Username
				g.email = n.Nominee.Email
			}
			groups[n.NomineeID] = g
			order = append(order, n.NomineeID)
		}
		g.details = append(g.details, detailLine(n))
		g.count++
	}
	sort.Strings(order)

	inputs := make([]ports.SentimentInput, 0, len(order))
	for _, nomineeID := range order {
		g := groups[nomineeID]
		inputs = append(inputs, ports.SentimentInput{
			ID: g.firstNominationID,
			Reason: fmt.Sprintf("Candidate: %s. Received %d nominations. Inputs: %s",
				g.name, g.count, strings.Join(g.details, " | ")),
		})
	}

	var results []ports.SentimentResult
	if s.analyzer != nil {
		results, err = s.analyzer.Analyze(ctx, inputs)
		if err != nil {
			// Model failures degrade to placeholders, never to a request error.
			s.log.Warn().Err(err).Msg("sentiment analysis failed, using placeholders")
			results = nil
		}
	}
	byID := make(map[string]ports.SentimentResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}

	insights := make([]ports.CandidateInsight, 0, len(order))
	for _, nomineeID := range order {
		g := groups[nomineeID]
		insight := ports.CandidateInsight{
			NominationID: g.firstNominationID,
			Name:         g.name,
			Email:        g.email,
			Nominations:  g.count,
			Summary:      summaryPending,
			Sentiment:    sentimentNeutral,
			Status:       string(domain.StatusSubmitted),
		}
		if r, ok := byID[g.firstNominationID]; ok {
			if r.Summary != "" {
				insight.Summary = r.Summary
			}
			if r.Sentiment != "" {
				insight.Sentiment = r.Sentiment
			}
		}
		insights = append(insights, insight)
	}
	return insights, nil
}

// detailLine renders one nomination as "Focus: categories (metrics) -> reason".
func detailLine(n *domain.Nomination) string {
	catSet := make(map[string]struct{})
	metSet := make(map[string]struct{})
	var cats, mets []string
	for _, sel := range n.Selections {
		if _, ok := catSet[sel.Category]; !ok && sel.Category != "" {
			catSet[sel.Category] = struct{}{}
			cats = append(cats, sel.Category)
		}
		if _, ok := metSet[sel.Metric]; !ok && sel.Metric != "" {
			metSet[sel.Metric] = struct{}{}
			mets = append(mets, sel.Metric)
		}
	}
	reason := n.Reason
	if reason == "" {
		reason = "No specific reason provided."
	}
	return fmt.Sprintf("Focus: %s (%s) -> %s", strings.Join(cats, ", "), strings.Join(mets, ", "), reason)
}
