package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"vibe-ticker/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co"
	alphaVantageVendor  = "alphavantage"

	// historyDays is how many trailing daily bars make up a price history.
	historyDays = 7

	seriesDaily   = "Time Series (Daily)"
	seriesDigital = "Time Series (Digital Currency Daily)"
)

const (
	msgRateLimited    = "Alpha Vantage rate limit exceeded (5 calls/min). Please wait a minute and try again."
	msgInvalidKey     = "Alpha Vantage: Please use a valid API key. Get a free key at alphavantage.co/support/#api-key"
	msgPriceTransport = "Could not fetch price data. Please try again."
	msgSearchBusy     = "Symbol search is busy. Please try again shortly."
)

// AlphaVantageProvider calls the Alpha Vantage query API for daily series and
// symbol search. Series fetches wait on limiter. Searches draw from their own
// searchLimiter and never wait, so autocomplete cannot starve price lookups.
type AlphaVantageProvider struct {
	client        *http.Client
	baseURL       string
	apiKey        string
	tracer        trace.Tracer
	limiter       *rate.Limiter
	searchLimiter *rate.Limiter
}

// NewAlphaVantageProvider creates a provider limited to callsPerMin series
// requests and callsPerMin search requests per minute. callsPerMin <= 0
// disables limiting.
func NewAlphaVantageProvider(tracer trace.Tracer, apiKey string, callsPerMin int, timeout time.Duration) *AlphaVantageProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	p := &AlphaVantageProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: alphaVantageBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
	}
	if callsPerMin > 0 {
		every := rate.Every(time.Minute / time.Duration(callsPerMin))
		p.limiter = rate.NewLimiter(every, callsPerMin)
		p.searchLimiter = rate.NewLimiter(every, callsPerMin)
	}
	return p
}

// Configured reports whether an API key is present.
func (p *AlphaVantageProvider) Configured() bool {
	return p != nil && p.apiKey != ""
}

// avEnvelope holds the soft-failure fields Alpha Vantage embeds in 200 responses.
type avEnvelope struct {
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
	Information  string `json:"Information"`
}

type avStatus int

const (
	avOK avStatus = iota
	avRateLimited
	avRejected
	avInformation
)

func (e avEnvelope) status() avStatus {
	switch {
	case e.Note != "":
		return avRateLimited
	case e.ErrorMessage != "":
		return avRejected
	case e.Information != "":
		return avInformation
	default:
		return avOK
	}
}

// err converts a soft failure into a typed vendor error, or nil when the body is usable.
func (e avEnvelope) err() error {
	switch e.status() {
	case avRateLimited:
		return &domain.VendorError{Vendor: alphaVantageVendor, Kind: domain.VendorRateLimited, Message: msgRateLimited}
	case avRejected:
		return &domain.VendorError{Vendor: alphaVantageVendor, Kind: domain.VendorRejected, Message: e.ErrorMessage}
	case avInformation:
		msg := e.Information
		if strings.Contains(msg, "API key") || strings.Contains(msg, "demo") {
			msg = msgInvalidKey
		}
		return &domain.VendorError{Vendor: alphaVantageVendor, Kind: domain.VendorCredential, Message: msg}
	default:
		return nil
	}
}

type avSeriesResponse struct {
	avEnvelope
	Daily   map[string]map[string]string `json:"Time Series (Daily)"`
	Digital map[string]map[string]string `json:"Time Series (Digital Currency Daily)"`
}

type avSymbolMatch struct {
	Symbol   string `json:"1. symbol"`
	Name     string `json:"2. name"`
	Region   string `json:"4. region"`
	Currency string `json:"8. currency"`
}

type avSearchResponse struct {
	avEnvelope
	BestMatches []avSymbolMatch `json:"bestMatches"`
}

// FetchDailySeries returns the last daily equity/ETF bars for symbol, oldest
// first. A nil slice with a nil error means the vendor had no series.
func (p *AlphaVantageProvider) FetchDailySeries(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-daily-series")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var resp avSeriesResponse
	if err := p.query(ctx, p.waitSeries, url.Values{
		"function": {"TIME_SERIES_DAILY"},
		"symbol":   {symbol},
	}, &resp); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := resp.err(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(resp.Daily) == 0 {
		return nil, nil
	}
	return parseSeries(resp.Daily, dailyClose), nil
}

// FetchDigitalSeries returns the last daily digital-currency bars (USD market).
func (p *AlphaVantageProvider) FetchDigitalSeries(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-digital-series")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var resp avSeriesResponse
	if err := p.query(ctx, p.waitSeries, url.Values{
		"function": {"DIGITAL_CURRENCY_DAILY"},
		"symbol":   {symbol},
		"market":   {"USD"},
	}, &resp); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := resp.err(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(resp.Digital) == 0 {
		return nil, nil
	}
	return parseSeries(resp.Digital, digitalClose), nil
}

// SearchSymbols queries the SYMBOL_SEARCH endpoint.
func (p *AlphaVantageProvider) SearchSymbols(ctx context.Context, keywords string) ([]domain.TickerSuggestion, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.search-symbols")
	defer span.End()

	var resp avSearchResponse
	if err := p.query(ctx, p.allowSearch, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keywords},
	}, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}

	out := make([]domain.TickerSuggestion, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		out = append(out, domain.TickerSuggestion{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Region:   m.Region,
			Currency: m.Currency,
		})
	}
	return out, nil
}

// waitSeries blocks until the series limiter grants a call.
func (p *AlphaVantageProvider) waitSeries(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return &domain.VendorError{
			Vendor:  alphaVantageVendor,
			Kind:    domain.VendorUnavailable,
			Message: msgPriceTransport,
			Err:     fmt.Errorf("rate limit wait: %w", err),
		}
	}
	return nil
}

// allowSearch takes a search token without waiting.
func (p *AlphaVantageProvider) allowSearch(context.Context) error {
	if p.searchLimiter == nil || p.searchLimiter.Allow() {
		return nil
	}
	return &domain.VendorError{Vendor: alphaVantageVendor, Kind: domain.VendorRateLimited, Message: msgSearchBusy}
}

func (p *AlphaVantageProvider) query(ctx context.Context, throttle func(context.Context) error, params url.Values, out any) error {
	if !p.Configured() {
		return &domain.ConfigError{Key: "ALPHAVANTAGE_API_KEY", Message: "Alpha Vantage API key is not configured."}
	}
	if err := throttle(ctx); err != nil {
		return err
	}

	body, err := p.doRequest(ctx, params)
	if err != nil {
		return &domain.VendorError{Vendor: alphaVantageVendor, Kind: domain.VendorUnavailable, Message: msgPriceTransport, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.VendorError{
			Vendor:  alphaVantageVendor,
			Kind:    domain.VendorUnavailable,
			Message: msgPriceTransport,
			Err:     fmt.Errorf("decode %s response: %w", params.Get("function"), err),
		}
	}
	return nil
}

func (p *AlphaVantageProvider) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("apikey", p.apiKey)
	endpoint := strings.TrimRight(p.baseURL, "/") + "/query?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("alpha vantage API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

type closeFunc func(fields map[string]string) float64

// dailyClose prefers "4. close", then "5. adjusted close", then the first field.
func dailyClose(fields map[string]string) float64 {
	if v, ok := fields["4. close"]; ok {
		return parseFloatOrNaN(v)
	}
	if v, ok := fields["5. adjusted close"]; ok {
		return parseFloatOrNaN(v)
	}
	keys := sortedKeys(fields)
	if len(keys) == 0 {
		return math.NaN()
	}
	return parseFloatOrNaN(fields[keys[0]])
}

// digitalClose picks the first field whose name contains "close", e.g. "4a. close (USD)".
func digitalClose(fields map[string]string) float64 {
	for _, k := range sortedKeys(fields) {
		if strings.Contains(strings.ToLower(k), "close") {
			return parseFloatOrNaN(fields[k])
		}
	}
	return math.NaN()
}

// parseSeries keeps the last historyDays dates in ascending order and derives
// each point's sentiment from the day-over-day move: pct change x10, clamped
// to [-1, 1].
func parseSeries(series map[string]map[string]string, closeOf closeFunc) []domain.PricePoint {
	dates := sortedKeys(series)
	if len(dates) > historyDays {
		dates = dates[len(dates)-historyDays:]
	}

	points := make([]domain.PricePoint, 0, len(dates))
	prev := math.NaN()
	for i, date := range dates {
		closePrice := closeOf(series[date])

		sentiment := 0.0
		if i > 0 && !math.IsNaN(prev) && prev > 0 && !math.IsNaN(closePrice) {
			sentiment = clampUnit((closePrice - prev) / prev * 10)
		}

		price := closePrice
		if math.IsNaN(price) {
			price = 0
		}
		points = append(points, domain.PricePoint{Date: date, Price: price, Sentiment: sentiment})
		prev = closePrice
	}
	return points
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseFloatOrNaN(v string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
