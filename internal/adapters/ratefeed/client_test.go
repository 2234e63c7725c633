package ratefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rates", r.URL.Path)
		assert.Equal(t, "CNY", r.URL.Query().Get("from"))
		assert.Equal(t, "RUB", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"from":"CNY","to":"RUB","rate":"13.45"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	rate, err := client.FetchRate(context.Background(), "CNY", "RUB")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(13.45)), "got %s", rate)
}

func TestFetchRate_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	_, err := client.FetchRate(context.Background(), "CNY", "RUB")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestFetchRate_NonPositiveRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"from":"CNY","to":"RUB","rate":"0"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	_, err := client.FetchRate(context.Background(), "CNY", "RUB")
	assert.Error(t, err)
}

func TestFetchRate_UnconfiguredBaseURL(t *testing.T) {
	client := NewClient("", 2*time.Second)

	_, err := client.FetchRate(context.Background(), "CNY", "RUB")
	assert.Error(t, err)
}
