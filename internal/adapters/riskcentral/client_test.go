package riskcentral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coopcredit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEvaluate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/risk-evaluation", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req evaluationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1017654321", req.DocumentNumber)
		assert.Equal(t, 10000000.0, req.Amount)
		assert.Equal(t, 24, req.TermMonths)

		json.NewEncoder(w).Encode(evaluationResponse{
			DocumentNumber: req.DocumentNumber,
			Score:          784,
			RiskLevel:      "LOW",
			Details:        "Low credit risk. Excellent payment history and credit behavior.",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)
	resp, err := client.Evaluate(context.Background(), "1017654321", 10000000, 24)

	require.NoError(t, err)
	assert.Equal(t, "1017654321", resp.DocumentNumber)
	assert.Equal(t, 784, resp.Score)
	assert.Equal(t, domain.RiskLow, resp.Level)
}

func TestClientEvaluateSpanishLevelAlias(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(evaluationResponse{Score: 520, RiskLevel: "MEDIO"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).Evaluate(context.Background(), "12345678", 1000000, 12)

	require.NoError(t, err)
	assert.Equal(t, domain.RiskMedium, resp.Level)
}

func TestClientEvaluateUnknownLevelMapsToHigh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(evaluationResponse{Score: 800, RiskLevel: "WHATEVER"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).Evaluate(context.Background(), "12345678", 1000000, 12)

	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, resp.Level)
}

func TestClientEvaluateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Evaluate(context.Background(), "12345678", 1000000, 12)

	assert.ErrorIs(t, err, domain.ErrRiskCentralUnavailable)
}

func TestClientEvaluateConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before the call

	_, err := NewClient(server.URL, time.Second).Evaluate(context.Background(), "12345678", 1000000, 12)

	assert.ErrorIs(t, err, domain.ErrRiskCentralUnavailable)
}

func TestClientEvaluateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Evaluate(context.Background(), "12345678", 1000000, 12)

	assert.ErrorIs(t, err, domain.ErrRiskCentralUnavailable)
}

func TestLocalEvaluate(t *testing.T) {
	local := NewLocal()

	resp, err := local.Evaluate(context.Background(), "52489657", 5000000, 36)

	require.NoError(t, err)
	assert.Equal(t, 326, resp.Score)
	assert.Equal(t, domain.RiskHigh, resp.Level)

	// Deterministic across calls
	again, err := local.Evaluate(context.Background(), "52489657", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, resp.Score, again.Score)
}

func TestLocalEvaluateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocal().Evaluate(ctx, "52489657", 1000000, 12)
	assert.Error(t, err)
}
