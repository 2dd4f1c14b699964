package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httptransport "stayride/internal/http"
	"stayride/internal/infra"
	"stayride/internal/modules/checkout"
	"stayride/internal/modules/fare"
	"stayride/internal/modules/location"
	"stayride/internal/modules/pricing"
	"stayride/internal/types"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, token string) (*infra.VerifiedToken, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &infra.VerifiedToken{UID: "guest-1", Role: infra.RoleGuest}, nil
}

type properties map[types.ID]*pricing.Property

func (p properties) GetProperty(_ context.Context, id types.ID) (*pricing.Property, error) {
	if prop, ok := p[id]; ok {
		return prop, nil
	}
	return nil, pricing.ErrPropertyNotFound
}

func newServer(t *testing.T, checks map[string]httptransport.HealthCheck) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fares, err := fare.NewService(nil, nil)
	require.NoError(t, err)
	stays := pricing.NewService(properties{"prop-1": {
		ID: "prop-1", Name: "Sea View Apartment", BasePrice: 100000, Currency: "TZS",
		Latitude: -6.7924, Longitude: 39.2083,
	}, "prop-2": {
		ID: "prop-2", Name: "Unmapped Cottage", BasePrice: 50000, Currency: "TZS",
	}}, nil, 10, "TZS", nil)
	locations := location.NewService(nil, nil, nil)

	srv := httptransport.NewServer(httptransport.ServerDeps{
		Fare:     fares,
		Pricing:  stays,
		Checkout: checkout.NewService(stays, fares, locations),
		Location: locations,
		Verifier: stubVerifier{},
		Checks:   checks,
	})
	return srv.Routes()
}

func TestHealth(t *testing.T) {
	h := newServer(t, map[string]httptransport.HealthCheck{
		"db": func(context.Context) error { return nil },
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"ok"`)

	h = newServer(t, map[string]httptransport.HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestMetricsExposed(t *testing.T) {
	h := newServer(t, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fares/vehicles", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestCheckoutQuote_RequiresAuth(t *testing.T) {
	h := newServer(t, nil)
	body := `{"property_id":"prop-1","nights":2}`

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutQuote_WithTransport(t *testing.T) {
	h := newServer(t, nil)
	payload, err := json.Marshal(map[string]any{
		"property_id":       "prop-1",
		"nights":            2,
		"origin":            map[string]any{"latitude": -6.8781, "longitude": 39.2026},
		"vehicle_type":      "CAR",
		"at":                "2026-10-14T14:00:00Z",
		"include_transport": true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/quote", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var q checkout.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 220000.0, q.Stay.FinalPrice)
	require.NotNil(t, q.Transport)
	assert.Equal(t, 7775.0, q.Transport.Fare.Total)
	assert.Equal(t, types.Money{Amount: 227775, Currency: "TZS"}, q.Total)
}

func postCheckout(t *testing.T, h http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/quote", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCheckoutQuote_UnpinnedPropertyRejected(t *testing.T) {
	h := newServer(t, nil)
	w := postCheckout(t, h, map[string]any{
		"property_id":       "prop-2",
		"nights":            2,
		"origin":            map[string]any{"latitude": -6.8781, "longitude": 39.2026},
		"include_transport": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"destination"`)
}

func TestCheckoutQuote_LockWithoutTransportRejected(t *testing.T) {
	h := newServer(t, nil)
	w := postCheckout(t, h, map[string]any{
		"property_id": "prop-1",
		"nights":      2,
		"lock_fare":   true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "lock_fare requires include_transport")
}
