package gistemp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
	"github.com/couchcryptid/climate-anomaly-etl/internal/observability"
)

// DefaultBaseURL serves the GISTEMP v4 monthly-means tables.
const DefaultBaseURL = "https://data.giss.nasa.gov/gistemp/tabledata_v4"

// sourceFiles maps each region to its table filename under the base URL.
var sourceFiles = map[domain.Region]string{
	domain.RegionGlobal:   "GLB.Ts+dSST.csv",
	domain.RegionNorthern: "NH.Ts+dSST.csv",
	domain.RegionSouthern: "SH.Ts+dSST.csv",
}

// Client fetches and parses the per-region GISTEMP CSVs. It implements
// pipeline.Fetcher. Transient HTTP failures are retried with exponential
// backoff inside FetchRegion; the pipeline itself never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a GISTEMP client. The timeout applies per HTTP attempt.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: uint64(maxRetries),
		logger:     logger,
		metrics:    metrics,
	}
}

// FetchRegion retrieves one region's monthly table. Any failure, whether
// transport, HTTP status, or CSV format, surfaces as a
// domain.RetrievalError for that region.
func (c *Client) FetchRegion(ctx context.Context, region domain.Region) (domain.RawTable, error) {
	file, ok := sourceFiles[region]
	if !ok {
		return domain.RawTable{}, &domain.RetrievalError{Region: region, Err: fmt.Errorf("unknown region")}
	}

	start := time.Now()
	body, err := c.download(ctx, region, c.baseURL+"/"+file)
	c.metrics.FetchDuration.WithLabelValues(string(region)).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(string(region), "error").Inc()
		return domain.RawTable{}, &domain.RetrievalError{Region: region, Err: err}
	}

	table, err := ParseMonthlyTable(bytes.NewReader(body), region)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(string(region), "error").Inc()
		return domain.RawTable{}, &domain.RetrievalError{Region: region, Err: err}
	}

	c.metrics.FetchRequests.WithLabelValues(string(region), "success").Inc()
	c.logger.Info("fetched region table", "region", region, "rows", len(table.Rows))
	return table, nil
}

// download GETs the URL with exponential backoff on transient failures.
// 4xx responses are permanent: the file is wrong, not the network.
func (c *Client) download(ctx context.Context, region domain.Region, url string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.metrics.FetchRetries.WithLabelValues(string(region)).Inc()
		c.logger.Warn("fetch failed, retrying", "region", region, "error", err, "wait", wait)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.RetryNotify(operation, bo, notify); err != nil {
		return nil, err
	}
	return body, nil
}
