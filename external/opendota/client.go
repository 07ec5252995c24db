package opendota

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/resilience"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.opendota.com/api"
	defaultTimeout    = 20 * time.Second
	userAgent         = "OpenDota_API_Fetch"
	maxBodySize       = 8 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errOpenDotaTransient = crerr.New("opendota transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RequestGap     time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client talks to the OpenDota REST API. Requests are serialized and spaced
// by RequestGap.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	pacer      *resilience.Pacer
	breaker    *resilience.Breaker
	logger     *logging.Logger
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                userAgent,
			MaxConnsPerHost:     16,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxBodySize,
		}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	gap := cfg.RequestGap
	if gap < 0 {
		gap = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		pacer:      resilience.NewPacer(gap),
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker),
		logger:     logger.Named("opendota"),
		backoff:    func(attempt int) time.Duration { return time.Duration(attempt+1) * time.Second },
	}
}

// FetchMatch loads /matches/{id} and maps it to the ingestion payload.
func (c *Client) FetchMatch(ctx context.Context, providerMatchID string) (usecase.ExternalMatch, error) {
	id, err := parseMatchID(providerMatchID)
	if err != nil {
		return usecase.ExternalMatch{}, err
	}

	raw, err := c.do(ctx, fasthttp.MethodGet, "/matches/"+strconv.FormatInt(id, 10))
	if err != nil {
		return usecase.ExternalMatch{}, fmt.Errorf("fetch opendota match %d: %w", id, err)
	}

	var payload matchPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return usecase.ExternalMatch{}, fmt.Errorf("decode opendota match %d: %w", id, err)
	}
	if payload.MatchID == 0 {
		return usecase.ExternalMatch{}, fmt.Errorf("%w: opendota match %d has no data", usecase.ErrNotFound, id)
	}
	return payload.toExternal(), nil
}

// RequestParse asks OpenDota to download and parse the replay.
func (c *Client) RequestParse(ctx context.Context, providerMatchID string) error {
	id, err := parseMatchID(providerMatchID)
	if err != nil {
		return err
	}
	if _, err := c.do(ctx, fasthttp.MethodPost, "/request/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("request opendota parse %d: %w", id, err)
	}
	c.logger.InfoContext(ctx, "replay parse requested", "match_id", id)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	release, err := c.pacer.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	fullURL := c.buildURL(path)
	var raw []byte
	err = c.breaker.Do(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, method, fullURL)
		return reqErr
	}, isCircuitFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "opendota circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: match provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return raw, err
}

func (c *Client) buildURL(path string) string {
	fullURL := c.baseURL + path
	if c.apiKey != "" {
		fullURL += "?" + url.Values{"api_key": []string{c.apiKey}}.Encode()
	}
	return fullURL
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body, status, err := c.send(ctx, method, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errOpenDotaTransient, c.sanitize(err.Error()))
		case status >= 200 && status < 300:
			return body, nil
		case status == fasthttp.StatusNotFound:
			return nil, fmt.Errorf("%w: opendota status=404", usecase.ErrNotFound)
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOpenDotaTransient, status, abbreviateBody(body))
		default:
			return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "opendota request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, method, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(method)
	req.Header.SetUserAgent(userAgent)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func (c *Client) sanitize(value string) string {
	return sanitizeSensitiveText(value, c.apiKey)
}

func parseMatchID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid provider match id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiKeyParamRegex.ReplaceAllString(rawURL, "api_key=REDACTED")
	}
	query := parsed.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errOpenDotaTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
