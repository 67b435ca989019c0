package domain

// SentimentLabel classifies a single headline.
type SentimentLabel string

const (
	LabelBullish SentimentLabel = "Bullish"
	LabelBearish SentimentLabel = "Bearish"
	LabelNeutral SentimentLabel = "Neutral"
)

const (
	VibeOptimistic = "Optimistic"
	VibeCautious   = "Cautious"
	VibeNeutral    = "Neutral"
)

// PricePoint is one daily close. Sentiment is derived from the day-over-day
// price move and drives the chart overlay; it is unrelated to news sentiment.
type PricePoint struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	Sentiment float64 `json:"sentiment"`
}

// NewsItem is a headline, optionally enriched with an LLM sentiment score.
type NewsItem struct {
	Headline       string         `json:"headline"`
	Source         string         `json:"source"`
	Summary        string         `json:"summary"`
	URL            string         `json:"url"`
	SentimentScore float64        `json:"sentimentScore"`
	SentimentLabel SentimentLabel `json:"sentimentLabel"`
}

// PriceData is the normalised result of the price provider chain.
type PriceData struct {
	Symbol           string       `json:"symbol"`
	CompanyName      string       `json:"companyName"`
	CurrentPrice     float64      `json:"currentPrice"`
	PriceChange24h   float64      `json:"priceChange24h"`
	PercentChange24h float64      `json:"percentChange24h"`
	History          []PricePoint `json:"history"`
}

// TickerData is the unified dashboard response for one symbol.
type TickerData struct {
	Symbol           string       `json:"symbol"`
	CompanyName      string       `json:"companyName"`
	CurrentPrice     float64      `json:"currentPrice"`
	PriceChange24h   float64      `json:"priceChange24h"`
	PercentChange24h float64      `json:"percentChange24h"`
	OverallVibeScore int          `json:"overallVibeScore"`
	VibeLabel        string       `json:"vibeLabel"`
	CorrelationScore float64      `json:"correlationScore"`
	History          []PricePoint `json:"history"`
	News             []NewsItem   `json:"news"`
	TopKeywords      []string     `json:"topKeywords"`
}

// TickerSuggestion is one autocomplete match.
type TickerSuggestion struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Region   string `json:"region,omitempty"`
	Currency string `json:"currency,omitempty"`
}
