package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vibe-ticker/internal/domain"

	"github.com/phuslu/log"
	tele "gopkg.in/telebot.v3"
)

const commandTimeout = 45 * time.Second

type Analyzer interface {
	AnalyzeTicker(ctx context.Context, symbol string) (*domain.TickerData, error)
}

type Searcher interface {
	SearchTickers(ctx context.Context, query string) []domain.TickerSuggestion
}

var newBot = tele.NewBot

// StartTelegramBot serves /ping, /vibe and /search. It is a no-op without a token.
func StartTelegramBot(token string, analyzer Analyzer, searcher Searcher) {
	token = strings.TrimSpace(token)
	if token == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := newBot(pref)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Telegram bot")
		return
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/vibe", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(vibeReply(ctx, analyzer, c.Args()))
	})

	b.Handle("/search", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(searchReply(ctx, searcher, c.Args()))
	})

	log.Info().Msg("Telegram bot started")
	go b.Start()
}

func vibeReply(ctx context.Context, analyzer Analyzer, args []string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "Usage: /vibe AAPL"
	}
	symbol := domain.NormalizeSymbol(args[0])
	data, err := analyzer.AnalyzeTicker(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("telegram vibe failed")
		return fmt.Sprintf("Error analyzing %s: %s", symbol, domain.UserMessage(err))
	}
	return formatVibe(data)
}

func searchReply(ctx context.Context, searcher Searcher, args []string) string {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return "Usage: /search apple"
	}
	matches := searcher.SearchTickers(ctx, query)
	if len(matches) == 0 {
		return fmt.Sprintf("No matches for %q", query)
	}
	var sb strings.Builder
	for _, m := range matches {
		sb.WriteString(m.Symbol + " - " + m.Name)
		if m.Region != "" {
			sb.WriteString(" (" + m.Region + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatVibe(d *domain.TickerData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nPrice: $%.2f\n24h Change: %+.2f (%+.2f%%)\n", d.Symbol, d.CurrentPrice, d.PriceChange24h, d.PercentChange24h)
	fmt.Fprintf(&sb, "Vibe: %d/100 (%s)\nCorrelation: %.2f\n", d.OverallVibeScore, d.VibeLabel, d.CorrelationScore)
	if len(d.TopKeywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(d.TopKeywords, ", "))
	}
	for _, n := range d.News {
		fmt.Fprintf(&sb, "\n[%s %+.2f] %s (%s)", n.SentimentLabel, n.SentimentScore, n.Headline, n.Source)
	}
	return strings.TrimRight(sb.String(), "\n")
}
