package legacygateway

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"order-status/internal/common/legacyprotocol"
	"order-status/internal/orderstatus/textnorm"
	"order-status/pkg/logging"
)

// NotFoundStatus is returned when the legacy system has no status for a key.
// It is a valid answer, not a failure.
const NotFoundStatus = "Order not found in legacy system"

var (
	ErrGatewayUnavailable = errors.New("legacy system unavailable")
	ErrMalformedResponse  = errors.New("malformed legacy system response")
)

type GatewayError struct {
	Code int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("legacy system responded with status code %d", e.Code)
}

const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeStatusCode  = "status_code"
	OutcomeMalformed   = "malformed"
)

type LookupObserver interface {
	ObserveLookup(outcome string, elapsed time.Duration)
}

type Config struct {
	Endpoint           string
	Template           legacyprotocol.Template
	StatusElement      string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Gateway looks up free-text order status in the legacy order management system.
// It keeps no state between lookups and never retries.
type Gateway struct {
	client   *resty.Client
	cfg      Config
	logger   *logging.ZapLogger
	observer LookupObserver
}

func New(cfg Config, logger *logging.ZapLogger, observer LookupObserver) *Gateway {
	if cfg.StatusElement == "" {
		cfg.StatusElement = legacyprotocol.DefaultStatusElement
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", legacyprotocol.ContentType)
	if cfg.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // legacy endpoint uses a self-signed certificate
	}
	return &Gateway{
		client:   client,
		cfg:      cfg,
		logger:   logger,
		observer: observer,
	}
}

func (g *Gateway) Lookup(ctx context.Context, searchKey string) (string, error) {
	start := time.Now()
	status, outcome, err := g.lookup(ctx, searchKey)
	if g.observer != nil {
		g.observer.ObserveLookup(outcome, time.Since(start))
	}
	return status, err
}

func (g *Gateway) lookup(ctx context.Context, searchKey string) (string, string, error) {
	body, err := g.cfg.Template.Render(searchKey)
	if err != nil {
		return "", OutcomeMalformed, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := g.client.
		R().
		SetContext(ctx).
		SetBody(body).
		Post(g.cfg.Endpoint)
	if err != nil {
		g.logger.DebugCtx(ctx, "legacy request failed", zap.String("searchKey", searchKey), zap.Error(err))
		return "", OutcomeUnavailable, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	if !resp.IsSuccess() {
		g.logger.DebugCtx(ctx, "legacy request rejected",
			zap.String("searchKey", searchKey),
			zap.Int("statusCode", resp.StatusCode()),
		)
		return "", OutcomeStatusCode, &GatewayError{Code: resp.StatusCode()}
	}
	g.logger.DebugCtx(ctx, "legacy response received",
		zap.String("searchKey", searchKey),
		zap.Int("bytes", len(resp.Body())),
	)

	text, found, err := extractStatus(resp.Body(), g.cfg.StatusElement)
	if err != nil {
		return "", OutcomeMalformed, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	text = strings.TrimSpace(textnorm.Normalize(text))
	if !found || text == "" {
		return NotFoundStatus, OutcomeNotFound, nil
	}
	return text, OutcomeFound, nil
}
