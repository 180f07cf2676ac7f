package bankroll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fala com o bankroll-service (variante server-backed)
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

type balancePayload struct {
	CurrentBalance float64 `json:"current_balance"`
}

func (c *Client) Current(ctx context.Context) (float64, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/bankroll", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return 0, fmt.Errorf("bankroll get http %d", res.StatusCode)
	}
	var out balancePayload
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.CurrentBalance, nil
}

func (c *Client) Set(ctx context.Context, balance float64) error {
	if balance < 0 {
		balance = 0
	}
	body, _ := json.Marshal(balancePayload{CurrentBalance: balance})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/api/bankroll", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("bankroll put http %d", res.StatusCode)
	}
	return nil
}
