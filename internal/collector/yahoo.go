package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"GoldSentinel/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"XAUUSD": "GC=F",
			"XAU":    "GC=F",
			"GOLD":   "GC=F",
			"XAGUSD": "SI=F",
			"SILVER": "SI=F",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// rangeFor picks the smallest Yahoo range that covers limit bars of the
// given interval. Yahoo caps intraday history, so intervals below one
// hour never request more than a month.
func rangeFor(interval string, limit int) string {
	switch interval {
	case "1m", "5m", "15m", "30m":
		if limit <= 300 {
			return "5d"
		}
		return "1mo"
	case "1h", "60m":
		if limit <= 120 {
			return "5d"
		}
		return "1mo"
	case "1d":
		switch {
		case limit <= 30:
			return "1mo"
		case limit <= 90:
			return "3mo"
		case limit <= 180:
			return "6mo"
		case limit <= 365:
			return "1y"
		}
		return "2y"
	case "1wk":
		if limit <= 52 {
			return "1y"
		}
		return "2y"
	default:
		return "3mo"
	}
}

func yahooInterval(interval string) string {
	if interval == "1h" {
		return "60m"
	}
	return interval
}

func (f *YahooFetcher) fetchChart(symbol, interval, rng string) ([]model.Bar, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchBars returns up to limit most recent bars for the interval.
func (f *YahooFetcher) FetchBars(symbol, interval string, limit int) ([]model.Bar, error) {
	bars, err := f.fetchChart(symbol, yahooInterval(interval), rangeFor(interval, limit))
	if err != nil {
		return nil, err
	}
	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

func (f *YahooFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	bars, err := f.fetchChart(symbol, "1m", "1d")
	if err != nil {
		// Intraday quotes can lag outside trading hours; fall back to daily.
		bars, err = f.fetchChart(symbol, "1d", "5d")
		if err != nil {
			return 0, err
		}
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no price data")
	}
	return bars[len(bars)-1].Close, nil
}
