// Package chat backs the playground demo: a text-in/text-out responder that
// forwards visitor prompts to an OpenAI-compatible chat-completions endpoint
// with the site's assistant instruction. The responder never propagates
// upstream failures; callers always receive a printable reply.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const systemInstruction = `You are the Autonexgen Virtual Assistant.
Autonexgen (autonexgen.com) is a premier AI Automation Agency based in Ahmedabad, India.
We specialize in:
1. AI Agents & Chatbots (WhatsApp, Web, Voice)
2. Workflow Automation (Make.com, n8n, Zapier)
3. Custom AI Solutions (Predictive modeling, OCR, Proprietary tools)

Your tone: Professional, innovative, helpful, and concise.
If asked about contact info, provide contact@autonexgen.com.
If asked about pricing, mention that we offer custom quotes based on business needs.
If asked about services, list the three categories above.
Always encourage the user to "Book a Consultation" for deep dives.`

const (
	// ApologyReply is returned whenever the upstream call fails.
	ApologyReply = "The system is currently undergoing a brief maintenance. Please try again in a moment."
	// EmptyReply is returned when the upstream answers without content.
	EmptyReply = "I'm sorry, I couldn't process that request right now."
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 500

	// maxResponseSize caps the upstream body read to guard against a
	// misbehaving endpoint.
	maxResponseSize = 1 << 20
)

// Config describes the upstream completion endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Responder answers playground prompts.
type Responder struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewResponder constructs a Responder with sane defaults.
func NewResponder(cfg Config) *Responder {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	endpoint := baseURL
	if !strings.HasSuffix(endpoint, "/chat/completions") {
		endpoint += "/chat/completions"
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// Reply answers a visitor prompt. On any upstream failure it returns the
// fixed apology string instead of an error.
func (r *Responder) Reply(ctx context.Context, userPrompt string) string {
	reply, err := r.complete(ctx, userPrompt)
	if err != nil {
		r.logger.Warn("chat completion failed", zap.Error(err))
		return ApologyReply
	}
	if strings.TrimSpace(reply) == "" {
		return EmptyReply
	}
	return reply
}

func (r *Responder) complete(ctx context.Context, userPrompt string) (string, error) {
	payload := completionRequest{
		Model: r.model,
		Messages: []completionMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userPrompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("chat: encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chat: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	response, err := r.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("chat: post: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("chat: read response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat: endpoint returned status %d", response.StatusCode)
	}

	var decoded completionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return decoded.Choices[0].Message.Content, nil
}
