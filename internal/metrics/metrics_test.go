package metrics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubClient struct {
	err      error
	readyErr error
}

func (s stubClient) Complete(context.Context, ai.ChatRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func (s stubClient) Ready() error { return s.readyErr }

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&model.ConfigurationError{Setting: "k"}, OutcomeConfigError},
		{&model.ExternalServiceError{Op: "x"}, OutcomeExternalError},
		{errors.New("other"), OutcomeError},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestInstrumentedClient_CountsByPurposeAndOutcome(t *testing.T) {
	m := New()
	ok := NewInstrumentedClient(stubClient{}, m, discardLogger())
	failing := NewInstrumentedClient(stubClient{err: &model.ExternalServiceError{Op: "x"}}, m, discardLogger())

	ctx := context.Background()
	_, _ = ok.Complete(ctx, ai.ChatRequest{Purpose: ai.PurposeSampleAnswer})
	_, _ = ok.Complete(ctx, ai.ChatRequest{Purpose: ai.PurposeSampleAnswer})
	_, _ = failing.Complete(ctx, ai.ChatRequest{Purpose: ai.PurposeCoaching})

	if got := testutil.ToFloat64(m.ModelCalls.WithLabelValues(ai.PurposeSampleAnswer, OutcomeOK)); got != 2 {
		t.Errorf("sample ok calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ModelCalls.WithLabelValues(ai.PurposeCoaching, OutcomeExternalError)); got != 1 {
		t.Errorf("coaching error calls = %v, want 1", got)
	}
}

func TestInstrumentedClient_ForwardsReady(t *testing.T) {
	m := New()
	cfgErr := &model.ConfigurationError{Setting: "OPENAI_API_KEY", Err: model.ErrMissingCredential}
	c := NewInstrumentedClient(stubClient{readyErr: cfgErr}, m, discardLogger())

	if err := ai.CheckReady(c); !errors.Is(err, model.ErrMissingCredential) {
		t.Errorf("Ready() = %v, want missing credential", err)
	}
}

func TestObserveSummary(t *testing.T) {
	m := New()
	m.ObserveSummary(nil, 2*time.Second)
	m.ObserveSummary(&model.ExternalServiceError{Op: "x"}, time.Second)

	if got := testutil.ToFloat64(m.Summaries.WithLabelValues(OutcomeOK)); got != 1 {
		t.Errorf("ok summaries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Summaries.WithLabelValues(OutcomeExternalError)); got != 1 {
		t.Errorf("failed summaries = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.SummaryDuration); got != 1 {
		t.Errorf("summary duration series = %d, want 1", got)
	}
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/"+id, nil))
	}

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/items/{id}", "418")); got != 2 {
		t.Errorf("requests = %v, want 2", got)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.WSConnections.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mockinterview_websocket_connections 1") {
		t.Errorf("exposition missing gauge:\n%s", rec.Body.String())
	}
}
