package trainer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/fitcoach/internal/fitness"

	log "github.com/sirupsen/logrus"
)

// Client talks to the external AI gateway (an OpenAI-style
// chat completions endpoint) with a bearer credential.
type Client struct {
	gatewayURL    string // e.g. https://ai.gateway.lovable.dev/v1/chat/completions
	model         string
	defaultAPIKey string
	httpClient    *http.Client
}

func NewClient(gatewayURL, model, defaultAPIKey string, httpClient *http.Client) *Client {
	return &Client{
		gatewayURL:    gatewayURL,
		model:         model,
		defaultAPIKey: defaultAPIKey,
		httpClient:    httpClient,
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one non-streaming completion request: the system prompt
// followed by the conversation turns. A non-empty apiKeyOverride takes
// precedence over the configured default credential.
func (c *Client) Complete(
	ctx context.Context,
	apiKeyOverride string,
	systemPrompt string,
	conversation []fitness.ChatMessage,
) (string, error) {
	apiKey := c.defaultAPIKey
	if apiKeyOverride != "" {
		apiKey = apiKeyOverride
	}
	if apiKey == "" {
		return "", ErrNoAPIKey
	}

	messages := make([]completionMessage, 0, len(conversation)+1)
	messages = append(messages, completionMessage{Role: "system", Content: systemPrompt})
	for _, m := range conversation {
		messages = append(messages, completionMessage{Role: string(m.Role), Content: m.Content})
	}

	reqBody, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.statusToError(resp)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response bytes: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(respBytes, &completion); err != nil {
		return "", fmt.Errorf("unmarshal completion response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return completion.Choices[0].Message.Content, nil
}

func (c *Client) statusToError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrQuotaExceeded
	}

	errorText, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("read ai gateway error response [status %d]: %s", resp.StatusCode, err)
	}

	return &UpstreamError{
		StatusCode: resp.StatusCode,
		Detail:     string(errorText),
	}
}
