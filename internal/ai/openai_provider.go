package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

const opChatCompletion = "chat completion"

// maxErrorBody caps how much of a non-2xx body ends up in an error message.
const maxErrorBody = 512

// OpenAIProvider calls an OpenAI-compatible /chat/completions endpoint.
type OpenAIProvider struct {
	baseURL    string
	creds      CredentialSource
	timeout    time.Duration
	httpClient *http.Client
}

// NewOpenAIProvider creates a provider targeting baseURL. A positive timeout
// bounds each call; zero leaves the caller's context in charge.
func NewOpenAIProvider(baseURL string, creds CredentialSource, timeout time.Duration, httpClient *http.Client) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL:    baseURL,
		creds:      creds,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// chatRequest mirrors the OpenAI /v1/chat/completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Ready reports whether an API key is available.
func (p *OpenAIProvider) Ready() error {
	_, err := p.creds.APIKey()
	return err
}

// Complete sends req and returns the first choice's message content.
func (p *OpenAIProvider) Complete(ctx context.Context, req ChatRequest) (string, error) {
	apiKey, err := p.creds.APIKey()
	if err != nil {
		return "", err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	messages := make([]chatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = chatMessage{Role: string(m.Role), Content: m.Content}
	}
	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &model.ExternalServiceError{Op: opChatCompletion, Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.ExternalServiceError{Op: opChatCompletion, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &model.ExternalServiceError{Op: opChatCompletion, StatusCode: resp.StatusCode, Err: errors.New(errorMessage(respBytes))}
	}

	if !gjson.ValidBytes(respBytes) {
		return "", &model.ExternalServiceError{Op: opChatCompletion, StatusCode: resp.StatusCode, Err: errors.New("malformed response body")}
	}
	if msg := gjson.GetBytes(respBytes, "error.message"); msg.Exists() {
		return "", &model.ExternalServiceError{Op: opChatCompletion, StatusCode: resp.StatusCode, Err: errors.New(msg.String())}
	}

	content := gjson.GetBytes(respBytes, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", &model.ExternalServiceError{Op: opChatCompletion, StatusCode: resp.StatusCode, Err: errors.New("response has no message content")}
	}
	return content.String(), nil
}

// errorMessage prefers the API's error.message over the raw body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
			return msg.String()
		}
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(bytes.TrimSpace(body))
}
