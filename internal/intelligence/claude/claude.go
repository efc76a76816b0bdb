// Package claude implements the AI gateway against the Anthropic Messages
// API. Structured calls use forced tool_choice so the model answer comes back
// as a JSON tool input instead of free text.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence/gateway"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

const (
	apiVersion = "2023-06-01"

	maxRetries     = 3
	initialBackoff = time.Second
)

// Gateway calls the Anthropic Messages API.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	backoff    time.Duration
	logger     logging.Logger
}

var _ gateway.Gateway = (*Gateway)(nil)

// New builds a Gateway from the intelligence config.
func New(cfg config.IntelligenceConfig, logger logging.Logger) (*Gateway, error) {
	if cfg.ClaudeAPIKey == "" {
		return nil, errors.New(errors.CodeAIProviderDisabled, "claude API key not configured")
	}
	baseURL := strings.TrimRight(cfg.ClaudeBaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultClaudeBaseURL
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 3000
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gateway{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.ClaudeAPIKey,
		model:      cfg.ClaudeModel,
		maxTokens:  maxTokens,
		backoff:    initialBackoff,
		logger:     logger.Named("claude"),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Wire types
// ─────────────────────────────────────────────────────────────────────────────

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

type messagesRequest struct {
	Model      string      `json:"model"`
	MaxTokens  int         `json:"max_tokens"`
	Messages   []message   `json:"messages"`
	Tools      []tool      `json:"tools,omitempty"`
	ToolChoice *toolChoice `json:"tool_choice,omitempty"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Gateway calls
// ─────────────────────────────────────────────────────────────────────────────

func (g *Gateway) ClassifyDocument(ctx context.Context, text string) (document.Type, error) {
	prompt := fmt.Sprintf(gateway.ClassifyDocumentPrompt, gateway.Prepare(text, gateway.ClassifyTextLimit))
	resp, err := g.send(ctx, messagesRequest{
		Model:     g.model,
		MaxTokens: 50,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return document.ParseType(strings.ToLower(strings.TrimSpace(block.Text))), nil
		}
	}
	return document.TypeOther, nil
}

func (g *Gateway) ExtractPropertyData(ctx context.Context, text string, docType document.Type) (common.Metadata, error) {
	prompt := fmt.Sprintf(gateway.ExtractPropertyDataPrompt, docType, gateway.Prepare(text, gateway.ExtractTextLimit))
	resp, err := g.send(ctx, messagesRequest{
		Model:      g.model,
		MaxTokens:  2000,
		Messages:   []message{{Role: "user", Content: prompt}},
		Tools:      []tool{extractPropertyDataTool},
		ToolChoice: &toolChoice{Type: "tool", Name: extractPropertyDataTool.Name},
	})
	if err != nil {
		return nil, err
	}
	var data common.Metadata
	if err := unmarshalToolInput(resp, extractPropertyDataTool.Name, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = common.Metadata{}
	}
	return data, nil
}

func (g *Gateway) DetectRisks(ctx context.Context, text string, docType document.Type) ([]gateway.RiskCandidate, error) {
	prompt := fmt.Sprintf(gateway.DetectRisksPrompt, docType, gateway.Prepare(text, gateway.RisksTextLimit))
	resp, err := g.send(ctx, messagesRequest{
		Model:      g.model,
		MaxTokens:  g.maxTokens,
		Messages:   []message{{Role: "user", Content: prompt}},
		Tools:      []tool{detectRisksTool},
		ToolChoice: &toolChoice{Type: "tool", Name: detectRisksTool.Name},
	})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Risks []gateway.RiskCandidate `json:"risks"`
	}
	if err := unmarshalToolInput(resp, detectRisksTool.Name, &payload); err != nil {
		return nil, err
	}
	return payload.Risks, nil
}

func (g *Gateway) IdentifyStrengthsWeaknesses(ctx context.Context, text string, propertyData common.Metadata) (gateway.StrengthsWeaknesses, error) {
	propertyJSON, err := json.MarshalIndent(propertyData, "", "  ")
	if err != nil {
		propertyJSON = []byte("{}")
	}
	prompt := fmt.Sprintf(gateway.StrengthsWeaknessesPrompt, propertyJSON, gateway.Prepare(text, gateway.StrengthsTextLimit))
	resp, err := g.send(ctx, messagesRequest{
		Model:      g.model,
		MaxTokens:  2000,
		Messages:   []message{{Role: "user", Content: prompt}},
		Tools:      []tool{strengthsWeaknessesTool},
		ToolChoice: &toolChoice{Type: "tool", Name: strengthsWeaknessesTool.Name},
	})
	if err != nil {
		return gateway.StrengthsWeaknesses{}, err
	}
	var result gateway.StrengthsWeaknesses
	if err := unmarshalToolInput(resp, strengthsWeaknessesTool.Name, &result); err != nil {
		return gateway.StrengthsWeaknesses{}, err
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Transport
// ─────────────────────────────────────────────────────────────────────────────

// send posts a messages request, retrying on 429/5xx with exponential
// backoff. Client errors and malformed bodies fail immediately.
func (g *Gateway) send(ctx context.Context, req messagesRequest) (*messagesResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "marshal messages request")
	}

	backoff := g.backoff
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("retrying anthropic request",
				logging.Int("attempt", attempt),
				logging.Err(lastErr))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), errors.CodeAIRequestFailed, "anthropic request canceled")
			}
			backoff *= 2
		}

		resp, retryable, err := g.doRequest(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (g *Gateway) doRequest(ctx context.Context, body []byte) (*messagesResponse, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, false, errors.Wrap(err, errors.CodeInternal, "build anthropic request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", g.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, true, errors.Wrap(err, errors.CodeAIRequestFailed, "anthropic request failed")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, true, errors.Wrap(err, errors.CodeAIRequestFailed, "read anthropic response")
	}

	switch {
	case httpResp.StatusCode == http.StatusOK:
	case httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500:
		return nil, true, errors.Newf(errors.CodeAIRequestFailed, "anthropic returned status %d", httpResp.StatusCode)
	default:
		return nil, false, errors.Newf(errors.CodeAIRequestFailed, "anthropic returned status %d: %s", httpResp.StatusCode, respBody)
	}

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, false, errors.Wrap(err, errors.CodeAIMalformedOutput, "decode anthropic response")
	}
	return &resp, false, nil
}

// unmarshalToolInput finds the named tool_use block and decodes its input.
func unmarshalToolInput(resp *messagesResponse, name string, out interface{}) error {
	for _, block := range resp.Content {
		if block.Type != "tool_use" || block.Name != name {
			continue
		}
		if err := json.Unmarshal(block.Input, out); err != nil {
			return errors.Wrap(err, errors.CodeAIMalformedOutput, "decode tool input "+name)
		}
		return nil
	}
	return errors.Newf(errors.CodeAIMalformedOutput, "no %s tool_use block in response", name)
}
