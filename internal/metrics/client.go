package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
)

// InstrumentedClient is a decorator that counts and times every call made
// through the wrapped ModelClient.
type InstrumentedClient struct {
	inner   ai.ModelClient
	metrics *Metrics
	logger  *slog.Logger
}

// NewInstrumentedClient wraps inner with call metrics and debug logging.
func NewInstrumentedClient(inner ai.ModelClient, m *Metrics, logger *slog.Logger) *InstrumentedClient {
	return &InstrumentedClient{inner: inner, metrics: m, logger: logger}
}

// Complete delegates to the wrapped client and records the outcome.
func (c *InstrumentedClient) Complete(ctx context.Context, req ai.ChatRequest) (string, error) {
	start := time.Now()
	out, err := c.inner.Complete(ctx, req)
	elapsed := time.Since(start)

	outcome := Outcome(err)
	c.metrics.ModelCalls.WithLabelValues(req.Purpose, outcome).Inc()
	c.metrics.ModelCallDuration.WithLabelValues(req.Purpose).Observe(elapsed.Seconds())

	if err != nil {
		c.logger.Warn("model call failed", "purpose", req.Purpose, "model", req.Model, "duration", elapsed, "error", err)
	} else {
		c.logger.Debug("model call", "purpose", req.Purpose, "model", req.Model, "duration", elapsed)
	}
	return out, err
}

// Ready forwards to the wrapped client's readiness check.
func (c *InstrumentedClient) Ready() error {
	return ai.CheckReady(c.inner)
}
