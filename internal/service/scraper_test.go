package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

func TestScraperServiceSendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><p class="x">hello</p></body></html>`))
	}))
	defer server.Close()

	scraper := NewScraperService(ScraperConfig{UserAgent: "osu-test/1.0"}, zap.NewNop())
	doc, err := scraper.FetchDocument(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "osu-test/1.0", gotAgent)
	assert.Equal(t, "hello", doc.Find("p.x").Text())
}

func TestScraperServiceNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		scraper := NewScraperService(ScraperConfig{}, zap.NewNop())
		_, err := scraper.FetchDocument(context.Background(), server.URL+"/u/nobody")
		server.Close()

		var fetchErr *apperrors.FetchError
		require.ErrorAs(t, err, &fetchErr, "status %d", status)
		assert.Equal(t, status, fetchErr.StatusCode)
		assert.Contains(t, fetchErr.URL, "/u/nobody")
	}
}

func TestScraperServiceTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	scraper := NewScraperService(ScraperConfig{Timeout: time.Second}, zap.NewNop())
	_, err := scraper.FetchDocument(context.Background(), url)

	var fetchErr *apperrors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.NotNil(t, fetchErr.Unwrap())
}

func TestScraperServiceHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scraper := NewScraperService(ScraperConfig{}, zap.NewNop())
	_, err := scraper.FetchDocument(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
