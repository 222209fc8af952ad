package client

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
	"golang.org/x/time/rate"

	"github.com/substratumservices/horizon-client/internal/config"
	"github.com/substratumservices/horizon-client/internal/endpoint"
	"github.com/substratumservices/horizon-client/internal/logger"
	"github.com/substratumservices/horizon-client/internal/metrics"
	"github.com/substratumservices/horizon-client/internal/resources"
)

const (
	// RequestIDHeader carries a fresh id per request so server logs can be correlated
	RequestIDHeader = "X-Request-ID"
	// ClientNameHeader identifies the calling application
	ClientNameHeader = "X-Client-Name"

	maxBodySize = 10 << 20
)

// Client executes endpoint requests against a Horizon server
type Client struct {
	config     *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    metrics.MetricsService
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMetrics records transport metrics on ms instead of a private registry
func WithMetrics(ms metrics.MetricsService) Option {
	return func(c *Client) {
		c.metrics = ms
	}
}

// NewClient creates a new Horizon client with the given configuration
func NewClient(cfg *config.Config, opts ...Option) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	c := &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter: limiter,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewMetricsService()
	}
	return c
}

// Host returns the Horizon base URL requests are built against
func (c *Client) Host() string {
	return c.config.HorizonURL
}

// Metrics returns the metrics service the client records into
func (c *Client) Metrics() metrics.MetricsService {
	return c.metrics
}

// Do builds the request for ep, executes it and decodes the response with
// ep.DecodeResponse. Both type arguments are inferred from ep.
func Do[Resp any, Body any](ctx context.Context, c *Client, ep endpoint.Endpoint[Resp, Body]) (Resp, error) {
	var resp Resp
	name := endpointName(ep)

	req, err := ep.IntoRequest(c.Host())
	if err != nil {
		c.metrics.IncHorizonRequestFailure(name, "build")
		return resp, err
	}

	body, err := c.execute(ctx, name, req.Method, req.URL, req.Header, encodeBody(req))
	if err != nil {
		return resp, err
	}

	resp, err = ep.DecodeResponse(body)
	if err != nil {
		var decodeErr *resources.DecodeError
		if errors.As(err, &decodeErr) {
			c.metrics.IncDecodeFailure(decodeErr.Resource)
		} else {
			c.metrics.IncHorizonRequestFailure(name, "decode")
		}
		logger.Error("%s: error decoding response: %v", req.URL, err)
		var zero Resp
		return zero, fmt.Errorf("decoding %s response: %w", name, err)
	}

	return resp, nil
}

func encodeBody[Body any](req endpoint.Request[Body]) func() ([]byte, error) {
	if !req.HasBody() {
		return nil
	}
	return func() ([]byte, error) {
		return json.Marshal(req.Body)
	}
}

// execute sends one request and returns the body of a 2xx response
func (c *Client) execute(ctx context.Context, name, method, url string, header http.Header, body func() ([]byte, error)) ([]byte, error) {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.IncHorizonRequestFailure(name, "rate_limit")
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	c.metrics.ObserveRateLimitWait(time.Since(waitStart).Seconds())

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := body()
		if err != nil {
			c.metrics.IncHorizonRequestFailure(name, "build")
			return nil, fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		c.metrics.IncHorizonRequestFailure(name, "build")
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set(ClientNameHeader, c.config.ClientName)

	log := logger.With(map[string]interface{}{
		"request_id": requestID,
		"endpoint":   name,
	})
	log.Debug().Msgf("Starting %s request to %s", method, url)

	c.metrics.IncHorizonRequests(name)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	c.metrics.ObserveHorizonRequestDuration(name, elapsed.Seconds())
	if err != nil {
		c.metrics.IncHorizonRequestFailure(name, "transport")
		log.Error().Msgf("Request to %s failed after %v: %v", url, elapsed, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.IncHorizonResponses(name, resp.StatusCode)
	log.Debug().Msgf("Request to %s completed in %v with status %d", url, elapsed, resp.StatusCode)

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.metrics.IncHorizonRequestFailure(name, "read")
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncHorizonRequestFailure(name, "http_status")
		log.Warn().Msgf("%s: HTTP error %d", url, resp.StatusCode)
		return nil, newHTTPError(resp.StatusCode, bodyBytes)
	}

	return bodyBytes, nil
}

// endpointName turns endpoint.AccountDetails into account_details for metric labels
func endpointName(ep any) string {
	typeName := fmt.Sprintf("%T", ep)
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		typeName = typeName[i+1:]
	}

	var b strings.Builder
	for i, r := range typeName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AccountDetails fetches the account with the given id
func (c *Client) AccountDetails(ctx context.Context, id string) (resources.Account, error) {
	return Do(ctx, c, endpoint.NewAccountDetails(id))
}

// AccountData fetches one entry of an account's data store
func (c *Client) AccountData(ctx context.Context, id, key string) (resources.DataValue, error) {
	return Do(ctx, c, endpoint.NewAccountData(id, key))
}

// AllAssets fetches one page of the asset listing
func (c *Client) AllAssets(ctx context.Context, ep endpoint.AllAssets) (resources.Records[resources.Asset], error) {
	return Do(ctx, c, ep)
}

// Ping checks that the Horizon root answers with a 2xx status
func (c *Client) Ping(ctx context.Context) error {
	base := strings.TrimRight(c.Host(), "/") + "/"
	_, err := c.execute(ctx, "root", http.MethodGet, base, http.Header{"Accept": {"application/json"}}, nil)
	return err
}
