package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/saurabk077/currency-exchange/internal/core/domain"
	"github.com/saurabk077/currency-exchange/internal/core/ports"
	"github.com/shopspring/decimal"
)

// ExchangeRateHostName is the registry key and configuration row name for this adapter.
const ExchangeRateHostName = "ExchangeRateHost"

// ExchangeRateHostConfig holds the endpoint configuration injected at construction.
type ExchangeRateHostConfig struct {
	BaseURL string
	APIKey  string
}

// ExchangeRateHost fetches rates from the exchangerate.host API. Its quote
// maps are keyed by the concatenated pair ("USDEUR"); normalization strips
// the source prefix.
type ExchangeRateHost struct {
	cfg    ExchangeRateHostConfig
	client *http.Client
	logger *slog.Logger
}

var _ ports.RateProvider = (*ExchangeRateHost)(nil)

// NewExchangeRateHost creates the adapter. No I/O happens here.
func NewExchangeRateHost(cfg ExchangeRateHostConfig, client *http.Client, logger *slog.Logger) *ExchangeRateHost {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &ExchangeRateHost{
		cfg:    cfg,
		client: client,
		logger: logger.With(slog.String("provider", ExchangeRateHostName)),
	}
}

// Name implements ports.RateProvider.
func (p *ExchangeRateHost) Name() string { return ExchangeRateHostName }

type erHostHistoricalResponse struct {
	Success bool                       `json:"success"`
	Quotes  map[string]decimal.Decimal `json:"quotes"`
}

type erHostTimeframeResponse struct {
	Success bool                                  `json:"success"`
	Quotes  map[string]map[string]decimal.Decimal `json:"quotes"`
}

// GetExchangeRate fetches source->targets rates for a single date.
func (p *ExchangeRateHost) GetExchangeRate(ctx context.Context, sourceCode string, targetCodes []string, date time.Time) (domain.PointRates, error) {
	q := url.Values{}
	q.Set("access_key", p.cfg.APIKey)
	q.Set("date", date.Format(domain.DateLayout))
	q.Set("source", sourceCode)
	q.Set("currencies", strings.Join(targetCodes, ","))

	body, ok, err := p.get(ctx, "/historical", q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.PointRates{}, nil
	}

	var parsed erHostHistoricalResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding historical response: %w", err)
	}
	if !parsed.Success {
		p.logger.Warn("provider reported failure", slog.String("path", "/historical"))
		return domain.PointRates{}, nil
	}
	return p.normalizeQuotes(sourceCode, parsed.Quotes), nil
}

// GetTimeSeries fetches all rates from source over [start, end] inclusive.
func (p *ExchangeRateHost) GetTimeSeries(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error) {
	q := url.Values{}
	q.Set("access_key", p.cfg.APIKey)
	q.Set("start_date", start.Format(domain.DateLayout))
	q.Set("end_date", end.Format(domain.DateLayout))
	q.Set("source", sourceCode)

	body, ok, err := p.get(ctx, "/timeframe", q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.SeriesRates{}, nil
	}

	var parsed erHostTimeframeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding timeframe response: %w", err)
	}
	if !parsed.Success {
		p.logger.Warn("provider reported failure", slog.String("path", "/timeframe"))
		return domain.SeriesRates{}, nil
	}

	series := make(domain.SeriesRates, len(parsed.Quotes))
	for date, quotes := range parsed.Quotes {
		series[date] = p.normalizeQuotes(sourceCode, quotes)
	}
	return series, nil
}

// normalizeQuotes converts pair-keyed quotes ("USDEUR") into target-keyed rates.
func (p *ExchangeRateHost) normalizeQuotes(sourceCode string, quotes map[string]decimal.Decimal) domain.PointRates {
	rates := make(domain.PointRates, len(quotes))
	for pair, value := range quotes {
		target := strings.TrimPrefix(pair, sourceCode)
		if target == pair || target == "" {
			p.logger.Warn("skipping quote with unexpected pair key", slog.String("pair", pair))
			continue
		}
		rates[target] = value
	}
	return rates
}

func (p *ExchangeRateHost) get(ctx context.Context, path string, q url.Values) ([]byte, bool, error) {
	reqURL := strings.TrimRight(p.cfg.BaseURL, "/") + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("provider request failed", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false, nil
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		p.logger.Warn("provider response unreadable", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false, nil
	}
	if res.StatusCode != http.StatusOK {
		p.logger.Warn("provider returned non-success status",
			slog.String("path", path),
			slog.Int("status", res.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, false, nil
	}
	return body, true, nil
}
