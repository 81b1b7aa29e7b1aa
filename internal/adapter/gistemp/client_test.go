package gistemp

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
	"github.com/couchcryptid/climate-anomaly-etl/internal/observability"
)

const sampleCSV = "Station: Global Means\nYear,Jan,Feb,Mar,Apr,May,Jun,Jul,Aug,Sep,Oct,Nov,Dec\n1990,.36,.36,.70,.52,.44,.35,.40,.28,.23,.42,.40,.36\n"

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(baseURL, 5*time.Second, retries, slog.Default(), observability.NewMetricsForTesting())
}

func TestFetchRegion(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath.Store(r.URL.Path)
			w.Write([]byte(sampleCSV)) //nolint:errcheck
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 0)
		table, err := client.FetchRegion(context.Background(), domain.RegionGlobal)
		require.NoError(t, err)

		assert.Equal(t, "/GLB.Ts+dSST.csv", gotPath.Load())
		assert.Equal(t, domain.RegionGlobal, table.Region)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, 1990, table.Rows[0].Year)
	})

	t.Run("region file names", func(t *testing.T) {
		tests := []struct {
			region domain.Region
			file   string
		}{
			{domain.RegionGlobal, "/GLB.Ts+dSST.csv"},
			{domain.RegionNorthern, "/NH.Ts+dSST.csv"},
			{domain.RegionSouthern, "/SH.Ts+dSST.csv"},
		}

		for _, tt := range tests {
			var gotPath atomic.Value
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath.Store(r.URL.Path)
				w.Write([]byte(sampleCSV)) //nolint:errcheck
			}))

			client := newTestClient(srv.URL, 0)
			_, err := client.FetchRegion(context.Background(), tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.file, gotPath.Load())
			srv.Close()
		}
	})

	t.Run("retries transient server errors", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(sampleCSV)) //nolint:errcheck
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 5)
		table, err := client.FetchRegion(context.Background(), domain.RegionNorthern)
		require.NoError(t, err)
		assert.Equal(t, int64(3), calls.Load())
		assert.Equal(t, domain.RegionNorthern, table.Region)
	})

	t.Run("client errors are permanent", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 5)
		_, err := client.FetchRegion(context.Background(), domain.RegionSouthern)
		require.Error(t, err)
		assert.Equal(t, int64(1), calls.Load(), "404 must not be retried")

		var retrieval *domain.RetrievalError
		require.ErrorAs(t, err, &retrieval)
		assert.Equal(t, domain.RegionSouthern, retrieval.Region)
	})

	t.Run("exhausted retries surface a retrieval error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 1)
		_, err := client.FetchRegion(context.Background(), domain.RegionGlobal)

		var retrieval *domain.RetrievalError
		require.ErrorAs(t, err, &retrieval)
		assert.Equal(t, domain.RegionGlobal, retrieval.Region)
	})

	t.Run("malformed CSV surfaces a retrieval error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Year,Jan\n1990,warm\n")) //nolint:errcheck
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 0)
		_, err := client.FetchRegion(context.Background(), domain.RegionGlobal)

		var retrieval *domain.RetrievalError
		require.ErrorAs(t, err, &retrieval)
	})

	t.Run("unknown region", func(t *testing.T) {
		client := newTestClient("http://example.invalid", 0)
		_, err := client.FetchRegion(context.Background(), domain.Region("Tropics"))

		var retrieval *domain.RetrievalError
		require.ErrorAs(t, err, &retrieval)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := newTestClient(srv.URL, 10)
		_, err := client.FetchRegion(ctx, domain.RegionGlobal)
		require.Error(t, err)
	})
}
