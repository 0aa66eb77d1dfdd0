package exchangerateapi

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

func TestRate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"EUR","date":"2026-03-02","rates":{"EUR":1,"USD":1.0842,"INR":90.15}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	rate, err := c.Rate(context.Background(), "eur", "usd")

	require.NoError(t, err)
	assert.Equal(t, "/v4/latest/EUR", gotPath)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.0842")))
}

func TestRate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, `{}`},
		{"missing currency", http.StatusOK, `{"base":"EUR","rates":{"GBP":0.85}}`},
		{"malformed body", http.StatusOK, `{"rates":`},
		{"zero rate", http.StatusOK, `{"base":"EUR","rates":{"USD":0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Rate(context.Background(), "EUR", "USD")
			assert.Error(t, err)
		})
	}
}

func TestRate_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, 5*time.Second).Rate(ctx, "EUR", "USD")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
