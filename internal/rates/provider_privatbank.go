// Package rates fetches published exchange rates from external providers.
// The quotes are informational; settlement math never consumes them.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Quote struct {
	Currency     string
	BaseCurrency string
	Buy          string
	Sale         string
}

type Provider interface {
	GetRates(ctx context.Context) ([]Quote, error)
}

// PrivatBankProvider reads the PrivatBank public cash-rate feed.
type PrivatBankProvider struct {
	url    string
	client *http.Client
}

func NewPrivatBankProvider(url string) *PrivatBankProvider {
	return &PrivatBankProvider{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PrivatBankProvider) GetRates(ctx context.Context) ([]Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("privatbank: status %d", resp.StatusCode)
	}

	var data []struct {
		CCY     string `json:"ccy"`
		BaseCCY string `json:"base_ccy"`
		Buy     string `json:"buy"`
		Sale    string `json:"sale"`
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	quotes := make([]Quote, 0, len(data))
	for _, item := range data {
		quotes = append(quotes, Quote{
			Currency:     item.CCY,
			BaseCurrency: item.BaseCCY,
			Buy:          item.Buy,
			Sale:         item.Sale,
		})
	}
	return quotes, nil
}
