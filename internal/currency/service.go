package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoOfficialRate is returned when the API answers but carries no official quote.
var ErrNoOfficialRate = errors.New("no official rate in response")

type Service struct {
	client *resty.Client
	url    string
}

func NewService(apiURL string) *Service {
	client := resty.New().
		SetTimeout(10 * time.Second)

	return &Service{client: client, url: apiURL}
}

// Rates fetches the current quote list. Every call hits the network;
// there is no caching and no retry.
func (s *Service) Rates(ctx context.Context) ([]Rate, error) {
	var rates []Rate

	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&rates).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode())
	}

	return rates, nil
}

// OfficialRate fetches the quote list and extracts the official rate.
func (s *Service) OfficialRate(ctx context.Context) (float64, error) {
	rates, err := s.Rates(ctx)
	if err != nil {
		return 0, err
	}

	rate, ok := Official(rates)
	if !ok {
		return 0, ErrNoOfficialRate
	}

	return rate, nil
}
