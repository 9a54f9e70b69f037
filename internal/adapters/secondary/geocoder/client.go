package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client - клиент для геокодирования через Nominatim
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент геокодера
func NewClient(cfg *Config, log *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		Log: log,
	}
}

// searchResult элемент ответа Nominatim /search
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Search ищет место по текстовому запросу; found == false, если Nominatim
// ничего не вернул
func (c *Client) Search(ctx context.Context, query string) (lat, lon float64, found bool, err error) {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/search?" + url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("geocoder returned non-200 status",
			"status_code", resp.StatusCode,
			"query", query,
		)
		return 0, 0, false, fmt.Errorf("geocoder error [status=%d]", resp.StatusCode)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, false, fmt.Errorf("geocoder unmarshal failed: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocoder returned invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocoder returned invalid longitude %q: %w", results[0].Lon, err)
	}

	return lat, lon, true, nil
}
