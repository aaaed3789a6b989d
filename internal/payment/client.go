package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gasline/internal/config"
)

type Item struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Payer struct {
	Email string `json:"email"`
}

type PreferenceRequest struct {
	Items             []Item `json:"items"`
	Payer             Payer  `json:"payer"`
	ExternalReference string `json:"external_reference"`
}

type PreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Client creates payment preferences against the gateway. Item unit prices
// must already be tax-inclusive when they reach this client.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func New(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) CreatePreference(ctx context.Context, pref PreferenceRequest) (*PreferenceResponse, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("encoding preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, detail)
	}

	var created PreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding preference response: %w", err)
	}

	return &created, nil
}
