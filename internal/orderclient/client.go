// Package orderclient submits completed POS orders to the external order
// service.
package orderclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"go-pos-inventory/internal/model"
)

// ErrNetwork is returned when no HTTP response was received.
var ErrNetwork = errors.New("network error")

// RemoteError is a non-2xx answer from the order service.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http *resty.Client
	log  *zap.Logger
}

type envelope struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &Client{http: httpClient, log: log.Named("orderclient")}
}

// CreateSell posts order to /sells/ and returns the service's data field.
// Nothing is retried.
func (c *Client) CreateSell(ctx context.Context, order *model.Order) (interface{}, error) {
	var body envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(order).
		SetResult(&body).
		SetError(&body).
		Post("/sells/")
	if err != nil {
		c.log.Warn("order submission failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.IsError() {
		msg := body.Error
		if msg == "" {
			msg = resp.Status()
		}
		c.log.Info("order rejected",
			zap.String("order_id", order.ID),
			zap.Int("status", resp.StatusCode()),
			zap.String("error", msg))
		return nil, &RemoteError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return body.Data, nil
}
