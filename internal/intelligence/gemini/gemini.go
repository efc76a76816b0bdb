// Package gemini implements the AI gateway against the Gemini API via the
// google.golang.org/genai SDK. Structured calls constrain output with a JSON
// response schema.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence/gateway"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// Gateway calls the Gemini API.
type Gateway struct {
	client *genai.Client
	model  string
	logger logging.Logger
}

var _ gateway.Gateway = (*Gateway)(nil)

// New builds a Gateway from the intelligence config.
func New(ctx context.Context, cfg config.IntelligenceConfig, logger logging.Logger) (*Gateway, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New(errors.CodeAIProviderDisabled, "gemini API key not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeAIRequestFailed, "create gemini client")
	}
	return &Gateway{
		client: client,
		model:  cfg.GeminiModel,
		logger: logger.Named("gemini"),
	}, nil
}

func (g *Gateway) ClassifyDocument(ctx context.Context, text string) (document.Type, error) {
	prompt := fmt.Sprintf(gateway.ClassifyDocumentPrompt, gateway.Prepare(text, gateway.ClassifyTextLimit))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeAIRequestFailed, "gemini classify call failed")
	}
	return document.ParseType(strings.ToLower(strings.TrimSpace(resp.Text()))), nil
}

func (g *Gateway) ExtractPropertyData(ctx context.Context, text string, docType document.Type) (common.Metadata, error) {
	prompt := fmt.Sprintf(gateway.ExtractPropertyDataPrompt, docType, gateway.Prepare(text, gateway.ExtractTextLimit))
	data := common.Metadata{}
	if err := g.generateJSON(ctx, prompt, propertyDataSchema(), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (g *Gateway) DetectRisks(ctx context.Context, text string, docType document.Type) ([]gateway.RiskCandidate, error) {
	prompt := fmt.Sprintf(gateway.DetectRisksPrompt, docType, gateway.Prepare(text, gateway.RisksTextLimit))
	var payload struct {
		Risks []gateway.RiskCandidate `json:"risks"`
	}
	if err := g.generateJSON(ctx, prompt, risksSchema(), &payload); err != nil {
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
	var result gateway.StrengthsWeaknesses
	if err := g.generateJSON(ctx, prompt, strengthsWeaknessesSchema(), &result); err != nil {
		return gateway.StrengthsWeaknesses{}, err
	}
	return result, nil
}

// generateJSON runs a schema-constrained generation and decodes the JSON
// answer into out.
func (g *Gateway) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, out interface{}) error {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeAIRequestFailed, "gemini call failed")
	}
	respText := resp.Text()
	if err := json.Unmarshal([]byte(respText), out); err != nil {
		g.logger.Warn("gemini returned non-conforming JSON", logging.Err(err))
		return errors.Wrap(err, errors.CodeAIMalformedOutput, "decode gemini response")
	}
	return nil
}
