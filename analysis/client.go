// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	audioPath = "/v1/analyze/audio"
	textPath  = "/v1/analyze/text"

	// maxErrorBody caps how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Config for a gateway Client.
type Config struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// Backoff is multiplied by the attempt number before each retry.
	Backoff time.Duration
	// HTTPClient replaces the default client; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// Client talks to the analysis gateway. It is safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	log  logrus.FieldLogger
}

// NewClient validates cfg and fills in defaults.
func NewClient(cfg Config) (*Client, error) {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Client{cfg: cfg, http: hc, log: log}, nil
}

// AnalyzeAudio submits an encoded clip.
func (c *Client) AnalyzeAudio(ctx context.Context, data []byte, mimeType string) (*Verdict, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	return c.post(ctx, audioPath, audioRequest{MimeType: mimeType, Audio: data})
}

// AnalyzeText submits plain text.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*Verdict, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPayload
	}
	return c.post(ctx, textPath, textRequest{Text: text})
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Verdict, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	requestID := uuid.NewString()
	log := c.log.WithFields(logrus.Fields{"request_id": requestID, "path": path})

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.cfg.Backoff
			log.WithError(lastErr).WithField("attempt", attempt).Debug("retrying analysis request")

			t := time.NewTimer(wait)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			}
		}

		v, err := c.do(ctx, path, requestID, body)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retryable(err) {
			break
		}
	}

	return nil, fmt.Errorf("analysis request %s: %w", requestID, lastErr)
}

func (c *Client) do(ctx context.Context, path, requestID string, body []byte) (*Verdict, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var v Verdict
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedVerdict, err)
	}
	return &v, nil
}

// retryable: gateway 5xx and transport failures.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return !errors.Is(err, ErrMalformedVerdict)
}
