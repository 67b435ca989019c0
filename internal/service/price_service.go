package service

import (
	"context"

	"vibe-ticker/internal/cache"
	"vibe-ticker/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// PriceProvider serves daily price series. A nil slice with a nil error means
// the vendor has no series for the symbol.
type PriceProvider interface {
	Configured() bool
	FetchDailySeries(ctx context.Context, symbol string) ([]domain.PricePoint, error)
	FetchDigitalSeries(ctx context.Context, symbol string) ([]domain.PricePoint, error)
}

// PriceService resolves a symbol to recent daily prices, trying the crypto
// and equity endpoints in turn, and caches successes.
type PriceService struct {
	tracer   trace.Tracer
	provider PriceProvider
	cache    *cache.TTLCache[domain.PriceData]
	group    singleflight.Group
}

func NewPriceService(tracer trace.Tracer, provider PriceProvider, priceCache *cache.TTLCache[domain.PriceData]) *PriceService {
	return &PriceService{
		tracer:   tracer,
		provider: provider,
		cache:    priceCache,
	}
}

// Configured reports whether the price vendor has a credential.
func (s *PriceService) Configured() bool {
	return s.provider != nil && s.provider.Configured()
}

// FetchPriceData returns price data for symbol. Errors are *domain.ConfigError,
// *domain.VendorError or *domain.NoDataError.
func (s *PriceService) FetchPriceData(ctx context.Context, symbol string) (*domain.PriceData, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.fetch-price-data")
	defer span.End()

	symbol = domain.NormalizeSymbol(symbol)
	span.SetAttributes(attribute.String("symbol", symbol))

	if !s.Configured() {
		return nil, &domain.ConfigError{Key: "ALPHAVANTAGE_API_KEY", Message: "Alpha Vantage API key is not configured."}
	}

	if cached, ok := s.cache.Get(ctx, symbol); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return &cached, nil
	}

	v, err, shared := s.group.Do(symbol, func() (any, error) {
		history, err := s.fetchHistory(ctx, symbol)
		if err != nil {
			return nil, err
		}
		data := summarize(symbol, history)
		s.cache.Set(ctx, symbol, data)
		return data, nil
	})
	span.SetAttributes(attribute.Bool("shared", shared))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	data := v.(domain.PriceData)
	return &data, nil
}

// fetchHistory walks the vendor fallback chain. Any typed vendor failure
// aborts the chain.
func (s *PriceService) fetchHistory(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	knownCrypto := domain.IsKnownCrypto(symbol)

	if knownCrypto {
		history, err := s.provider.FetchDigitalSeries(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if len(history) > 0 {
			return history, nil
		}
	}

	history, err := s.provider.FetchDailySeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		return history, nil
	}

	// Known crypto symbols already hit the digital endpoint above.
	if !knownCrypto && domain.LooksLikeCrypto(symbol) {
		history, err = s.provider.FetchDigitalSeries(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if len(history) > 0 {
			return history, nil
		}
	}

	return nil, &domain.NoDataError{Symbol: symbol}
}

func summarize(symbol string, history []domain.PricePoint) domain.PriceData {
	last := history[len(history)-1]
	prev := last
	if len(history) > 1 {
		prev = history[len(history)-2]
	}

	change := last.Price - prev.Price
	pct := 0.0
	if prev.Price != 0 {
		pct = change / prev.Price * 100
	}

	return domain.PriceData{
		Symbol:           symbol,
		CompanyName:      symbol,
		CurrentPrice:     last.Price,
		PriceChange24h:   change,
		PercentChange24h: pct,
		History:          history,
	}
}
