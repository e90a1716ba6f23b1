package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"go-backoffice/internal/config"
)

var ErrNoRecipient = errors.New("sms recipient is empty")

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// APIClient posts form-encoded messages to a generic SMS gateway.
type APIClient struct {
	httpClient *resty.Client
	apiURL     string
	apiKey     string
}

func NewClient(cfg config.SMSConfig) *APIClient {
	restyClient := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
	}
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *APIClient) Send(ctx context.Context, to, message string) error {
	if to == "" {
		return ErrNoRecipient
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"to":      to,
			"message": message,
			"api_key": c.apiKey,
		}).
		SetError(apiErr).
		Post(c.apiURL)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		detail := apiErr.Message
		if detail == "" {
			detail = apiErr.Error
		}
		return fmt.Errorf("sms gateway error: status=%d, message=%s", resp.StatusCode(), detail)
	}

	return nil
}
