package riskcentral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coopcredit/internal/core/domain"
	"coopcredit/internal/core/services"
)

// Client calls the external risk central HTTP service. Failures are
// wrapped in domain.ErrRiskCentralUnavailable so callers can map them
// without knowing the transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new risk central HTTP client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type evaluationRequest struct {
	DocumentNumber string  `json:"document_number"`
	Amount         float64 `json:"amount"`
	TermMonths     int     `json:"term_months"`
}

type evaluationResponse struct {
	DocumentNumber string `json:"document_number"`
	Score          int    `json:"score"`
	RiskLevel      string `json:"risk_level"`
	Details        string `json:"details"`
}

// Evaluate requests a risk evaluation for one document number
func (c *Client) Evaluate(ctx context.Context, documentNumber string, amount float64, termMonths int) (*services.RiskResponse, error) {
	payload, err := json.Marshal(evaluationRequest{
		DocumentNumber: documentNumber,
		Amount:         amount,
		TermMonths:     termMonths,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRiskCentralUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/risk-evaluation", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRiskCentralUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRiskCentralUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrRiskCentralUnavailable, resp.StatusCode)
	}

	var body evaluationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRiskCentralUnavailable, err)
	}

	return &services.RiskResponse{
		DocumentNumber: body.DocumentNumber,
		Score:          body.Score,
		Level:          domain.ParseRiskLevel(body.RiskLevel),
		Details:        body.Details,
	}, nil
}
