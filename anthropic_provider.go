package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/spendlog/config"
	"github.com/Rshep3087/spendlog/taxonomy"
)

// AnthropicProvider implements AIProvider for Anthropic's Claude API.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic AI provider.
func NewAnthropicProvider(apiKey, model string, httpClient *http.Client) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	)

	return &AnthropicProvider{
		client: &client,
		model:  model,
	}
}

// newAnthropicSuggester is the providerFactory used in production.
func newAnthropicSuggester(cfg config.Config) (AIProvider, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, errors.New("Anthropic API key is required (set via anthropic_api_key in the config file, " +
			"SPENDLOG_ANTHROPIC_API_KEY or ANTHROPIC_API_KEY)")
	}

	httpClient := &http.Client{
		Transport: newLoggingTransport(http.DefaultTransport, log.Default()),
	}
	return NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel, httpClient), nil
}

// RecommendCategory implements AIProvider interface.
func (p *AnthropicProvider) RecommendCategory(
	ctx context.Context,
	expense ExpenseDescription,
	tax taxonomy.Taxonomy,
) (*CategoryRecommendation, error) {
	prompt := p.buildPrompt(expense, tax)

	log.Debug("sending categorization request to Anthropic", "description", expense.Description, "model", p.model)

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	// Extract text from response
	var responseText string
	if len(response.Content) > 0 {
		responseText = response.Content[0].Text
	}

	if responseText == "" {
		return nil, errors.New("empty response from Anthropic API")
	}

	recommendation, err := p.parseResponse(responseText, tax)
	if err != nil {
		log.Error("failed to parse Anthropic response", "error", err, "response", responseText)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return recommendation, nil
}

// buildPrompt constructs the prompt for category recommendation.
func (p *AnthropicProvider) buildPrompt(expense ExpenseDescription, tax taxonomy.Taxonomy) string {
	expenseInfo := formatExpenseForAI(expense)
	categoriesInfo := formatCategoriesForAI(tax)

	return fmt.Sprintf(`You are a personal finance categorization expert.
Please analyze the following expense and recommend the most appropriate category and subcategory from the available options.

%s

%s

Please respond with ONLY a JSON object in this exact format:
{
  "category": "<category name>",
  "subcategory": "<subcategory name>",
  "confidence": <number between 0-100>,
  "reasoning": "<brief explanation>"
}

Guidelines:
- Use category and subcategory names exactly as listed
- The subcategory must belong to the chosen category
- Confidence should reflect how certain you are (100 = very certain, 50 = moderate, 0 = just guessing)
- Keep reasoning brief (1-2 sentences max)
- If nothing fits well, choose the closest match and set confidence low`, expenseInfo, categoriesInfo)
}

// parseResponse parses the AI response and extracts the recommendation.
func (p *AnthropicProvider) parseResponse(response string, tax taxonomy.Taxonomy) (*CategoryRecommendation, error) {
	// Clean up the response - remove any markdown formatting or extra text
	response = strings.TrimSpace(response)

	// Find JSON content between braces
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")

	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON found in response: %s", response)
	}

	jsonStr := response[start : end+1]

	var result CategoryRecommendation
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w (original: %s)", err, jsonStr)
	}

	category, subcategory, err := tax.Resolve(result.Category, result.Subcategory)
	if err != nil {
		return nil, fmt.Errorf("recommended category not available: %w", err)
	}
	result.Category = category
	result.Subcategory = subcategory

	// Clamp confidence to 0-100 range
	result.Confidence = max(0, min(result.Confidence, maxConfidenceScore))

	return &result, nil
}
