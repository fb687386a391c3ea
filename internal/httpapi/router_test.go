// internal/httpapi/router_test.go

package httpapi

import (
	"context"
	"net/http"
	"testing"

	"SpudsBot-Go/internal/app"
	"SpudsBot-Go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := &config.Config{
		ServerAddress:           ":0",
		Environment:             "test",
		PerplexityEndpoint:      "http://127.0.0.1:0",
		NOAAPredictionsEndpoint: "http://127.0.0.1:0",
		NOAAMetadataEndpoint:    "http://127.0.0.1:0",
		RatePerSecond:           1000,
		RateBurst:               1000,
	}
	// No Mongo URI: the store degrades, startup still succeeds.
	return app.New(context.Background(), cfg, zap.NewNop())
}

func TestRouter_Wiring(t *testing.T) {
	router := NewRouter(newTestApp(t))

	rec := doRequest(t, router, "GET", "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "Grandpa Spuds Oakley")

	rec = doRequest(t, router, "GET", "/test/route", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "striped bass")

	rec = doRequest(t, router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["database"])

	// Intake parses but the degraded store cannot persist.
	rec = doRequest(t, router, "POST", "/user/info", "My name is John and I fish on Cape Cod")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doRequest(t, router, "GET", "/fishing-conditions/John", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_PerClientUsageLimit(t *testing.T) {
	router := NewRouter(newTestApp(t))

	var last int
	for i := 0; i < 11; i++ {
		rec := doRequest(t, router, "GET", "/test/route", "")
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
