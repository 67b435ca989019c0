package service

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"vibe-ticker/internal/domain"
)

const maxKeywords = 3

var (
	keywordRx = regexp.MustCompile(`\b[a-z]{4,}\b`)

	stopWords = map[string]struct{}{
		"this": {}, "that": {}, "with": {}, "from": {}, "they": {}, "have": {},
		"been": {}, "will": {}, "would": {}, "could": {}, "should": {},
	}
)

// AverageSentiment is the mean headline score, 0 for no headlines.
func AverageSentiment(items []domain.NewsItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, item := range items {
		sum += item.SentimentScore
	}
	return sum / float64(len(items))
}

// VibeScore maps an average sentiment in [-1, 1] onto [0, 100].
func VibeScore(avg float64) int {
	if math.IsNaN(avg) {
		avg = 0
	}
	score := math.Round(50 + avg*50)
	return int(math.Max(0, math.Min(100, score)))
}

func VibeLabel(score int) string {
	switch {
	case score >= 60:
		return domain.VibeOptimistic
	case score <= 40:
		return domain.VibeCautious
	default:
		return domain.VibeNeutral
	}
}

// ExtractKeywords returns the most frequent words of four or more letters
// across headlines and summaries, title-cased. Ties keep first-seen order.
// With nothing to count it returns [symbol].
func ExtractKeywords(items []domain.NewsItem, symbol string) []string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Headline+" "+item.Summary)
	}
	text := strings.ToLower(strings.Join(parts, " "))

	counts := make(map[string]int)
	var order []string
	for _, word := range keywordRx.FindAllString(text, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	if len(order) == 0 {
		return []string{symbol}
	}

	keywords := make([]string, len(order))
	for i, word := range order {
		keywords[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return keywords
}

// CorrelationScore estimates how well the price direction over history agrees
// with the average news sentiment. 0.5 means no signal; values above it mean
// the two point the same way.
func CorrelationScore(history []domain.PricePoint, avg float64) float64 {
	if len(history) < 2 {
		return 0.5
	}
	priceDir := sign(history[len(history)-1].Price - history[0].Price)
	sentimentDir := sign(avg)
	if priceDir == 0 || sentimentDir == 0 {
		return 0.5
	}

	magnitude := math.Min(1, math.Abs(avg))
	score := 0.5 - 0.5*magnitude
	if priceDir == sentimentDir {
		score = 0.5 + 0.5*magnitude
	}
	return math.Max(0, math.Min(1, score))
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// placeholderNews stands in for an empty news list.
func placeholderNews(symbol string) []domain.NewsItem {
	return []domain.NewsItem{{
		Headline:       "No recent news found for " + symbol,
		Source:         "VibeTicker",
		Summary:        "Please check back later for news updates.",
		URL:            "#",
		SentimentScore: 0,
		SentimentLabel: domain.LabelNeutral,
	}}
}
