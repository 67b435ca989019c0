// Package sentiment scores news headlines with a language model.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"vibe-ticker/internal/domain"

	"github.com/phuslu/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLM completes a scoring prompt and returns the raw response text, which
// should be a JSON array.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type Scorer struct {
	llm    LLM
	tracer trace.Tracer
}

// NewScorer returns a scorer. A nil llm makes every headline neutral.
func NewScorer(tracer trace.Tracer, llm LLM) *Scorer {
	return &Scorer{llm: llm, tracer: tracer}
}

// Configured reports whether an LLM backend is available.
func (s *Scorer) Configured() bool {
	return s != nil && s.llm != nil
}

type scoreRow struct {
	SentimentScore *float64 `json:"sentimentScore"`
	SentimentLabel string   `json:"sentimentLabel"`
}

// Score returns a copy of items with SentimentScore and SentimentLabel set,
// in input order. It never fails: any backend or parse problem leaves the
// affected items at {0, Neutral}.
func (s *Scorer) Score(ctx context.Context, items []domain.NewsItem) []domain.NewsItem {
	if len(items) == 0 {
		return []domain.NewsItem{}
	}

	out := make([]domain.NewsItem, len(items))
	for i, item := range items {
		item.SentimentScore = 0
		item.SentimentLabel = domain.LabelNeutral
		out[i] = item
	}
	if !s.Configured() {
		return out
	}

	ctx, span := s.tracer.Start(ctx, "sentiment.score")
	defer span.End()
	span.SetAttributes(
		attribute.Int("headlines", len(items)),
		attribute.String("llm", s.llm.Name()),
	)

	raw, err := s.llm.Complete(ctx, BuildPrompt(items))
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Str("llm", s.llm.Name()).Int("headlines", len(items)).Msg("sentiment scoring failed, using neutral")
		return out
	}

	rows, err := parseScores(raw)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Str("llm", s.llm.Name()).Msg("sentiment response unparseable, using neutral")
		return out
	}
	if len(rows) != len(items) {
		log.Debug().Int("expected", len(items)).Int("got", len(rows)).Msg("sentiment response length mismatch")
	}

	for i := range out {
		if i >= len(rows) {
			break
		}
		if rows[i].SentimentScore != nil {
			out[i].SentimentScore = clamp(*rows[i].SentimentScore, -1, 1)
		}
		out[i].SentimentLabel = normalizeLabel(rows[i].SentimentLabel)
	}
	return out
}

// BuildPrompt lists the headlines as `N. "headline" - summary`.
func BuildPrompt(items []domain.NewsItem) string {
	var sb strings.Builder
	sb.WriteString("Analyze the sentiment of these financial news articles. For each article, provide:\n")
	sb.WriteString("1. A sentiment score from -1.0 (very bearish) to 1.0 (very bullish)\n")
	sb.WriteString("2. A sentiment label: \"Bullish\", \"Bearish\", or \"Neutral\"\n\n")
	sb.WriteString("Articles to analyze:\n")
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %q - %s\n", i+1, strings.TrimSpace(item.Headline), strings.TrimSpace(item.Summary)))
	}
	sb.WriteString("\nReturn ONLY a JSON array with objects containing: sentimentScore (number), sentimentLabel (string).\n")
	sb.WriteString("The array should have the same order as the articles provided.")
	return sb.String()
}

func parseScores(raw string) ([]scoreRow, error) {
	raw = trimCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty sentiment response")
	}
	var rows []scoreRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("parse sentiment json: %w", err)
	}
	return rows, nil
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

func normalizeLabel(label string) domain.SentimentLabel {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "bull", "bullish", "positive":
		return domain.LabelBullish
	case "bear", "bearish", "negative":
		return domain.LabelBearish
	default:
		return domain.LabelNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
