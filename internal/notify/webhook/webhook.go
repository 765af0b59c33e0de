package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultBackoff  = time.Second
	defaultInterval = time.Second
	defaultBurst    = 5
	maxRetries      = 3
)

// Option configures a webhook Notifier.
type Option func(*Notifier)

// WithHeaders sets custom HTTP headers sent with every POST.
func WithHeaders(h map[string]string) Option {
	return func(n *Notifier) { n.headers = h }
}

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) { n.client.Timeout = d }
}

// WithRateLimit allows one POST per interval with the given burst.
// Default: one per second, burst 5. A zero interval disables limiting.
func WithRateLimit(interval time.Duration, burst int) Option {
	return func(n *Notifier) {
		if interval <= 0 {
			n.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		n.limiter = rate.NewLimiter(rate.Every(interval), burst)
	}
}

// WithBackoff sets the base retry delay, doubled per attempt. Default: 1s.
func WithBackoff(d time.Duration) Option {
	return func(n *Notifier) { n.backoff = d }
}

// Notifier POSTs each notification as a JSON object to an HTTP endpoint.
// Retries on 5xx with exponential backoff.
type Notifier struct {
	client  *http.Client
	url     string
	headers map[string]string
	limiter *rate.Limiter
	backoff time.Duration
}

// New creates a webhook notifier targeting the given URL.
func New(url string, opts ...Option) *Notifier {
	n := &Notifier{
		client:  &http.Client{Timeout: defaultTimeout},
		url:     url,
		limiter: rate.NewLimiter(rate.Every(defaultInterval), defaultBurst),
		backoff: defaultBackoff,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify waits for the rate limiter, then POSTs the notification.
func (n *Notifier) Notify(ctx context.Context, note notify.Notification) error {
	body, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("webhook: marshal: %w", err)
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webhook: rate limit: %w", err)
	}
	return n.postWithRetry(ctx, body)
}

func (n *Notifier) Close() error {
	n.client.CloseIdleConnections()
	return nil
}

// postWithRetry sends the body via HTTP POST with retry on 5xx.
func (n *Notifier) postWithRetry(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("webhook: %w", ctx.Err())
			case <-time.After(n.backoff << (attempt - 1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range n.headers {
			req.Header.Set(k, v)
		}

		resp, err := n.client.Do(req)
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}

		lastErr = fmt.Errorf("webhook: HTTP %d", resp.StatusCode)

		// Only retry on 5xx server errors.
		if resp.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}
