package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lingosub/internal/logging"
	"lingosub/internal/translation"
)

const (
	defaultHTTPTimeout    = 120 * time.Second
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
	defaultRetryAttempts  = 3
	healthCheckMaxTokens  = 5
)

// Config captures the runtime settings required to talk to the provider.
type Config struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// Client translates cue payloads through an OpenAI-compatible chat
// completions endpoint. It satisfies translation.Service.
type Client struct {
	cfg        Config
	httpClient *http.Client
	api        *openai.Client
	logger     *slog.Logger

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

var _ translation.Service = (*Client)(nil)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the total attempt count (defaults to 3).
// Values below 1 mean a single attempt.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = baseDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithLogger attaches a logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a translator client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:       &http.Client{Timeout: timeout},
		logger:           logging.NewNop(),
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(client)
	}

	apiConfig := openai.DefaultConfig(client.cfg.APIKey)
	if client.cfg.BaseURL != "" {
		apiConfig.BaseURL = client.cfg.BaseURL
	}
	apiConfig.HTTPClient = client.httpClient
	client.api = openai.NewClientWithConfig(apiConfig)
	return client
}

// Translate sends one payload of blank-line separated cues and returns the
// provider's reply verbatim.
func (c *Client) Translate(ctx context.Context, text string, req translation.Request) (string, error) {
	const op = "translate"
	if c.cfg.APIKey == "" {
		return "", &ServiceError{Kind: KindCredentialMissing, Op: op, Err: errors.New("set llm.api_key or OPENAI_API_KEY")}
	}
	payload := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req.TargetLanguage, text)},
		},
		Temperature: float32(req.Temperature),
	}
	if req.MaxTokens > 0 {
		payload.MaxTokens = req.MaxTokens
	}
	return c.completionContentWithRetry(ctx, payload, op)
}

// HealthCheck issues a minimal completion to verify the API key and model.
func (c *Client) HealthCheck(ctx context.Context, model string) error {
	const op = "health check"
	if c.cfg.APIKey == "" {
		return &ServiceError{Kind: KindCredentialMissing, Op: op, Err: errors.New("set llm.api_key or OPENAI_API_KEY")}
	}
	payload := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Reply with the single word OK."},
		},
		MaxTokens: healthCheckMaxTokens,
	}
	_, err := c.completionContentWithRetry(ctx, payload, op)
	return err
}

func (c *Client) completionContentWithRetry(ctx context.Context, payload openai.ChatCompletionRequest, op string) (string, error) {
	attempts := c.retryAttempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := c.completeOnce(ctx, payload, op)
		if err == nil {
			return content, nil
		}

		delay, retry := c.retryDelay(ctx, err, attempt, attempts)
		if !retry {
			if attempt > 1 {
				return "", fmt.Errorf("%s: failed after %d attempts: %w", op, attempt, err)
			}
			return "", err
		}
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "provider request failed; retrying", "provider_retry",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", attempts),
			logging.Duration("delay", delay),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "transient provider errors are retried with backoff"),
			logging.String(logging.FieldImpact, "chunk translation is delayed"),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return "", &ServiceError{Kind: KindTransportFailure, Op: op, Err: err}
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("unknown retry failure")
	}
	return "", fmt.Errorf("%s: failed after %d attempts: %w", op, attempts, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, payload openai.ChatCompletionRequest, op string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, payload)
	if err != nil {
		return "", classify(op, err)
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Kind: KindUnexpectedResponseShape, Op: op, Err: errors.New("no choices in response")}
	}
	choice := resp.Choices[0]
	if strings.TrimSpace(choice.Message.Content) == "" {
		detail := fmt.Sprintf("empty content (finish_reason=%q)", string(choice.FinishReason))
		if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
			detail += fmt.Sprintf(", refusal=%q", refusal)
		}
		return "", &ServiceError{Kind: KindUnexpectedResponseShape, Op: op, Err: errors.New(detail)}
	}
	return choice.Message.Content, nil
}

func classify(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &ServiceError{Kind: KindNonSuccessStatus, Op: op, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &ServiceError{Kind: KindNonSuccessStatus, Op: op, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &ServiceError{Kind: KindTransportFailure, Op: op, Err: err}
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func (c *Client) retryAttempts() int {
	if c == nil || c.retryMaxAttempts <= 0 {
		return 1
	}
	return c.retryMaxAttempts
}

func (c *Client) retryDelay(ctx context.Context, err error, attempt, maxAttempts int) (time.Duration, bool) {
	if attempt >= maxAttempts || err == nil {
		return 0, false
	}
	if ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Kind == KindNonSuccessStatus {
		if retryableStatus(svcErr.StatusCode) {
			return c.backoffDelay(attempt), true
		}
		return 0, false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return c.backoffDelay(attempt), true
	}
	return 0, false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	base := c.retryBaseDelay
	if base <= 0 {
		return 0
	}
	if attempt <= 0 {
		attempt = 1
	}
	maxDelay := c.maxDelay()

	// attempt 1 -> base, attempt 2 -> base*2, attempt 3 -> base*4, ...
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > maxDelay/2 {
			delay = maxDelay
			break
		}
		delay *= 2
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (c *Client) maxDelay() time.Duration {
	if c.retryMaxDelay > 0 {
		return c.retryMaxDelay
	}
	return defaultRetryMaxDelay
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
