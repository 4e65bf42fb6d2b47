package ai

import (
	"context"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// Call purposes, used to label logs and metrics.
const (
	PurposeInterview    = "interview"
	PurposeCoaching     = "coaching"
	PurposeSampleAnswer = "sample_answer"
)

// ChatRequest is one chat-completion call.
type ChatRequest struct {
	Purpose     string
	Model       string
	Messages    []model.Turn
	Temperature float64
	MaxTokens   int
}

// ModelClient sends a chat-completion request and returns the reply text.
// Failures are *model.ConfigurationError or *model.ExternalServiceError.
type ModelClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Readiness is implemented by clients that can tell, without a network call,
// whether they are able to issue requests at all.
type Readiness interface {
	Ready() error
}

// CheckReady returns client.Ready() when client implements Readiness, nil otherwise.
func CheckReady(client ModelClient) error {
	if r, ok := client.(Readiness); ok {
		return r.Ready()
	}
	return nil
}
