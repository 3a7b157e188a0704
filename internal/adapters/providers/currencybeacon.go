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

// CurrencyBeaconName is the registry key and configuration row name for this adapter.
const CurrencyBeaconName = "CurrencyBeacon"

// CurrencyBeaconConfig holds the endpoint configuration injected at construction.
type CurrencyBeaconConfig struct {
	BaseURL string
	APIKey  string
}

// CurrencyBeacon fetches rates from the currencybeacon.com API.
type CurrencyBeacon struct {
	cfg    CurrencyBeaconConfig
	client *http.Client
	logger *slog.Logger
}

var _ ports.RateProvider = (*CurrencyBeacon)(nil)

// NewCurrencyBeacon creates the adapter. No I/O happens here; credentials are
// only read when a fetch is performed.
func NewCurrencyBeacon(cfg CurrencyBeaconConfig, client *http.Client, logger *slog.Logger) *CurrencyBeacon {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &CurrencyBeacon{
		cfg:    cfg,
		client: client,
		logger: logger.With(slog.String("provider", CurrencyBeaconName)),
	}
}

// Name implements ports.RateProvider.
func (p *CurrencyBeacon) Name() string { return CurrencyBeaconName }

type beaconHistoricalResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

type beaconTimeSeriesResponse struct {
	Response map[string]map[string]decimal.Decimal `json:"response"`
}

// GetExchangeRate fetches source->targets rates for a single date.
// Transport and provider-side failures come back as an empty map.
func (p *CurrencyBeacon) GetExchangeRate(ctx context.Context, sourceCode string, targetCodes []string, date time.Time) (domain.PointRates, error) {
	q := url.Values{}
	q.Set("api_key", p.cfg.APIKey)
	q.Set("date", date.Format(domain.DateLayout))
	q.Set("base", sourceCode)
	q.Set("symbols", strings.Join(targetCodes, ","))

	body, ok, err := p.get(ctx, "/historical", q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.PointRates{}, nil
	}

	var parsed beaconHistoricalResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding historical response: %w", err)
	}

	rates := make(domain.PointRates, len(parsed.Rates))
	for code, value := range parsed.Rates {
		rates[code] = value
	}
	return rates, nil
}

// GetTimeSeries fetches all rates from source over [start, end] inclusive.
func (p *CurrencyBeacon) GetTimeSeries(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error) {
	q := url.Values{}
	q.Set("api_key", p.cfg.APIKey)
	q.Set("start_date", start.Format(domain.DateLayout))
	q.Set("end_date", end.Format(domain.DateLayout))
	q.Set("base", sourceCode)

	body, ok, err := p.get(ctx, "/timeseries", q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.SeriesRates{}, nil
	}

	var parsed beaconTimeSeriesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding timeseries response: %w", err)
	}

	series := make(domain.SeriesRates, len(parsed.Response))
	for date, byCode := range parsed.Response {
		rates := make(domain.PointRates, len(byCode))
		for code, value := range byCode {
			rates[code] = value
		}
		series[date] = rates
	}
	return series, nil
}

// get performs the wire call. The second return value reports whether the
// provider answered successfully; false means "no data, continue fallback".
func (p *CurrencyBeacon) get(ctx context.Context, path string, q url.Values) ([]byte, bool, error) {
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
