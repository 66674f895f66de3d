package exchangerate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goldify/goldify_backend/internal/adapters/upstream/exchangerate"
	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/latest/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{"result":"success","conversion_rates":{"USD":1,"PKR":278.25,"AED":3.6725}}`))
	}))
	defer srv.Close()

	client := exchangerate.NewClient(srv.URL, "test-key", time.Second)
	rates, err := client.FetchRates(context.Background())

	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.Equal(t, "278.25", rates["PKR"].StringFixed(2))
	assert.Equal(t, "1.00", rates["USD"].StringFixed(2))
}

func TestFetchRates_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	}))
	defer srv.Close()

	client := exchangerate.NewClient(srv.URL, "test-key", time.Second)
	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "error")
}

func TestFetchRates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := exchangerate.NewClient(srv.URL, "test-key", time.Second)
	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
