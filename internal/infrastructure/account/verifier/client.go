package verifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/user"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/resilience"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

var errVerifierTransient = crerr.New("token verifier transient failure")

const (
	defaultTimeout         = 5 * time.Second
	defaultCacheTTL        = 2 * time.Minute
	defaultCacheMaxEntries = 10000
)

type Config struct {
	HTTPClient *http.Client
	// VerifyURL receives POST {"token": "..."} and answers with
	// {"active", "user_id", "email", "admin"}.
	VerifyURL       string
	ServiceKey      string
	Timeout         time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	// AdminUserIDs grants admin to these users on top of the admin claim.
	AdminUserIDs   []string
	CircuitBreaker resilience.BreakerConfig
	Logger         *logging.Logger
}

// Client verifies bearer tokens against the account service and caches the
// resulting principals by token hash.
type Client struct {
	httpClient *http.Client
	verifyURL  string
	serviceKey string
	admins     map[string]struct{}
	cache      *principalCache
	breaker    *resilience.Breaker
	logger     *logging.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	maxEntries := cfg.CacheMaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}

	admins := make(map[string]struct{}, len(cfg.AdminUserIDs))
	for _, id := range cfg.AdminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}

	return &Client{
		httpClient: httpClient,
		verifyURL:  strings.TrimSpace(cfg.VerifyURL),
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		admins:     admins,
		cache:      newPrincipalCache(ttl, maxEntries),
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker),
		logger:     logger.Named("verifier"),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.cache.Get(key); ok {
		return principal, nil
	}

	var principal user.Principal
	err := c.breaker.Do(func() error {
		var reqErr error
		principal, reqErr = c.introspect(ctx, token)
		return reqErr
	}, isCircuitFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "token verifier circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if crerr.Is(err, errVerifierTransient) {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}
	if err != nil {
		return user.Principal{}, err
	}

	c.cache.Set(key, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(verifyRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.serviceKey != "" {
		req.Header.Set("x-service-key", c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request token verification: %v", errVerifierTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read verify response: %v", errVerifierTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// The account service refused our service key, not the caller.
		c.logger.ErrorContext(ctx, "account service rejected service key", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: account service denied verification", usecase.ErrDependencyUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "account service unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: status %d", errVerifierTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, fmt.Errorf("token verification failed with status %d", resp.StatusCode)
	}

	var decoded verifyResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("decode verify response: %w", err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	userID := strings.TrimSpace(decoded.UserID)
	if userID == "" {
		return user.Principal{}, fmt.Errorf("invalid verify response: user_id is empty")
	}

	_, listed := c.admins[userID]
	return user.Principal{
		UserID: userID,
		Email:  decoded.Email,
		Admin:  decoded.Admin || listed,
	}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}
