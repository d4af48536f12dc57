package external

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"libreria/util/errs"
	"libreria/util/logger"
)

// CatalogBook is the upstream representation of a book.
type CatalogBook struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type catalogPage struct {
	Results []CatalogBook `json:"results"`
}

// Client talks to the upstream catalog API.
type Client interface {
	FetchBooks(ctx context.Context) ([]CatalogBook, error)
	Available(ctx context.Context) bool
}

type client struct {
	rest    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration) Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "catalog-api",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Log.Warn(fmt.Sprintf("circuit breaker %s changed state: %s -> %s", name, from, to))
		},
	})

	return &client{rest: rest, breaker: breaker}
}

func (c *client) FetchBooks(ctx context.Context) ([]CatalogBook, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		var page catalogPage
		resp, err := c.rest.R().
			SetContext(ctx).
			SetResult(&page).
			Get("/books")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode())
		}
		return page.Results, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errs.InternalError("API externa no disponible")
		}
		logger.FromContext(ctx).Error(fmt.Sprintf("catalog API fetch failed: %v", err))
		return nil, errs.InternalError("Error al consultar la API externa")
	}
	return result.([]CatalogBook), nil
}

func (c *client) Available(ctx context.Context) bool {
	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.rest.R().SetContext(ctx).Get("/books")
		if err != nil {
			return false, err
		}
		return resp.IsSuccess(), nil
	})
	if err != nil {
		return false
	}
	return result.(bool)
}
