package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vibe-ticker/internal/cache"
	"vibe-ticker/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type mockPriceProvider struct {
	configured   bool
	daily        map[string][]domain.PricePoint
	digital      map[string][]domain.PricePoint
	dailyErr     error
	digitalErr   error
	dailyCalls   atomic.Int32
	digitalCalls atomic.Int32
	delay        time.Duration
}

func (m *mockPriceProvider) Configured() bool { return m.configured }

func (m *mockPriceProvider) FetchDailySeries(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	m.dailyCalls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.dailyErr != nil {
		return nil, m.dailyErr
	}
	return m.daily[symbol], nil
}

func (m *mockPriceProvider) FetchDigitalSeries(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	m.digitalCalls.Add(1)
	if m.digitalErr != nil {
		return nil, m.digitalErr
	}
	return m.digital[symbol], nil
}

func series(prices ...float64) []domain.PricePoint {
	out := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = domain.PricePoint{Date: time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), Price: p}
	}
	return out
}

func newTestPriceService(p PriceProvider) *PriceService {
	return NewPriceService(testTracer, p, cache.NewTTLCache[domain.PriceData](cache.NewMemoryStore(), "price:", 5*time.Minute))
}

func TestPriceService_EquitySummary(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true, daily: map[string][]domain.PricePoint{
		"AAPL": series(100, 101, 99, 105, 104, 103, 106),
	}}
	svc := newTestPriceService(p)

	got, err := svc.FetchPriceData(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Symbol != "AAPL" || got.CompanyName != "AAPL" {
		t.Fatalf("unexpected identity: %+v", got)
	}
	if got.CurrentPrice != 106 || got.PriceChange24h != 3 {
		t.Fatalf("unexpected price fields: %+v", got)
	}
	if want := 3.0 / 103 * 100; got.PercentChange24h != want {
		t.Fatalf("expected %f, got %f", want, got.PercentChange24h)
	}
	if p.digitalCalls.Load() != 0 {
		t.Fatal("equity symbol should not hit the digital endpoint when daily succeeds")
	}
}

func TestPriceService_SinglePointAndZeroPrevious(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true, daily: map[string][]domain.PricePoint{
		"ONE":  series(42),
		"ZERO": series(0, 5),
	}}
	svc := newTestPriceService(p)

	one, err := svc.FetchPriceData(context.Background(), "ONE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if one.PriceChange24h != 0 || one.PercentChange24h != 0 {
		t.Fatalf("single point should have zero change: %+v", one)
	}

	zero, err := svc.FetchPriceData(context.Background(), "ZERO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zero.PriceChange24h != 5 || zero.PercentChange24h != 0 {
		t.Fatalf("zero previous close should give 0%%: %+v", zero)
	}
}

func TestPriceService_KnownCryptoUsesDigitalFirst(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true, digital: map[string][]domain.PricePoint{
		"BTC": series(40000, 41000),
	}}
	svc := newTestPriceService(p)

	got, err := svc.FetchPriceData(context.Background(), "btc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentPrice != 41000 {
		t.Fatalf("unexpected price %f", got.CurrentPrice)
	}
	if p.dailyCalls.Load() != 0 || p.digitalCalls.Load() != 1 {
		t.Fatalf("expected one digital call only, got daily=%d digital=%d", p.dailyCalls.Load(), p.digitalCalls.Load())
	}
}

func TestPriceService_KnownCryptoFallsBackToDaily(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true, daily: map[string][]domain.PricePoint{
		"ONE": series(1, 2),
	}}
	svc := newTestPriceService(p)

	if _, err := svc.FetchPriceData(context.Background(), "ONE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.digitalCalls.Load() != 1 || p.dailyCalls.Load() != 1 {
		t.Fatalf("expected digital then daily, got daily=%d digital=%d", p.dailyCalls.Load(), p.digitalCalls.Load())
	}
}

func TestPriceService_CryptoLikeFallback(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true, digital: map[string][]domain.PricePoint{
		"PEPE": series(0.1, 0.2),
	}}
	svc := newTestPriceService(p)

	got, err := svc.FetchPriceData(context.Background(), "PEPE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentPrice != 0.2 {
		t.Fatalf("unexpected price %f", got.CurrentPrice)
	}
	if p.dailyCalls.Load() != 1 || p.digitalCalls.Load() != 1 {
		t.Fatalf("expected daily then digital, got daily=%d digital=%d", p.dailyCalls.Load(), p.digitalCalls.Load())
	}
}

func TestPriceService_NoData(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true}
	svc := newTestPriceService(p)

	_, err := svc.FetchPriceData(context.Background(), "BRK.B")
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if err.Error() != "No price data found for BRK.B. The symbol may not be supported. Try a different ticker." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if p.digitalCalls.Load() != 0 {
		t.Fatal("symbol that does not look like crypto should not hit the digital endpoint")
	}
}

func TestPriceService_VendorErrorAbortsChain(t *testing.T) {
	t.Parallel()

	rateLimited := &domain.VendorError{Vendor: "alphavantage", Kind: domain.VendorRateLimited, Message: "slow down"}
	p := &mockPriceProvider{configured: true, dailyErr: rateLimited}
	svc := newTestPriceService(p)

	_, err := svc.FetchPriceData(context.Background(), "PEPE")
	if !errors.Is(err, rateLimited) {
		t.Fatalf("expected vendor error, got %v", err)
	}
	if p.digitalCalls.Load() != 0 {
		t.Fatal("vendor error should abort before the crypto fallback")
	}

	// failures are not cached
	p.dailyErr = nil
	p.digital = map[string][]domain.PricePoint{"PEPE": series(1, 2)}
	if _, err := svc.FetchPriceData(context.Background(), "PEPE"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestPriceService_MissingKeyBeforeCache(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: false}
	store := cache.NewMemoryStore()
	priceCache := cache.NewTTLCache[domain.PriceData](store, "price:", time.Minute)
	priceCache.Set(context.Background(), "AAPL", domain.PriceData{Symbol: "AAPL"})
	svc := NewPriceService(testTracer, p, priceCache)

	_, err := svc.FetchPriceData(context.Background(), "AAPL")
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError even with a cached entry, got %v", err)
	}
	if cfgErr.Error() != "Alpha Vantage API key is not configured." {
		t.Fatalf("unexpected message %q", cfgErr.Error())
	}
	if p.dailyCalls.Load() != 0 {
		t.Fatal("no vendor call expected")
	}
}

func TestPriceService_CacheHitSkipsVendor(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{configured: true, daily: map[string][]domain.PricePoint{"MSFT": series(1, 2)}}
	svc := newTestPriceService(p)

	for i := 0; i < 3; i++ {
		if _, err := svc.FetchPriceData(context.Background(), "msft"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if p.dailyCalls.Load() != 1 {
		t.Fatalf("expected one vendor call within the TTL, got %d", p.dailyCalls.Load())
	}
}

func TestPriceService_RefetchesAfterTTL(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	p := &mockPriceProvider{configured: true, daily: map[string][]domain.PricePoint{"MSFT": series(100, 101)}}
	store := cache.NewMemoryStoreWithClock(clock)
	svc := NewPriceService(testTracer, p, cache.NewTTLCache[domain.PriceData](store, "price:", 5*time.Minute))

	first, err := svc.FetchPriceData(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	advance(4 * time.Minute)
	second, err := svc.FetchPriceData(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("expected identical payloads within the TTL:\n%s\n%s", firstJSON, secondJSON)
	}
	if p.dailyCalls.Load() != 1 {
		t.Fatalf("expected one vendor call within the TTL, got %d", p.dailyCalls.Load())
	}

	p.daily["MSFT"] = series(100, 110)
	advance(time.Minute + time.Second)
	third, err := svc.FetchPriceData(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.dailyCalls.Load() != 2 {
		t.Fatalf("expected a second vendor call after expiry, got %d", p.dailyCalls.Load())
	}
	if third.CurrentPrice != 110 {
		t.Fatalf("expected refreshed price 110, got %f", third.CurrentPrice)
	}
}

func TestPriceService_ConcurrentMissesCollapse(t *testing.T) {
	t.Parallel()

	p := &mockPriceProvider{
		configured: true,
		daily:      map[string][]domain.PricePoint{"NVDA": series(1, 2)},
		delay:      50 * time.Millisecond,
	}
	svc := newTestPriceService(p)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.FetchPriceData(context.Background(), "NVDA"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls := p.dailyCalls.Load(); calls > 2 {
		t.Fatalf("expected concurrent misses to share a vendor call, got %d calls", calls)
	}
}
