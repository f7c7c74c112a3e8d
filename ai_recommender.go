package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Rshep3087/spendlog/config"
	"github.com/Rshep3087/spendlog/taxonomy"
)

// AIProvider defines the interface for AI-powered category recommendations.
type AIProvider interface {
	// RecommendCategory returns the category and subcategory that best fit the
	// expense, together with a confidence score (0-100).
	RecommendCategory(
		ctx context.Context,
		expense ExpenseDescription,
		tax taxonomy.Taxonomy,
	) (*CategoryRecommendation, error)
}

// providerFactory builds an AIProvider from the configuration.
type providerFactory func(cfg config.Config) (AIProvider, error)

// ExpenseDescription is what the user tells us about an expense.
type ExpenseDescription struct {
	Description string
	Amount      string
	Date        string
}

// CategoryRecommendation represents an AI recommendation for an expense category.
type CategoryRecommendation struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Confidence  float64 `json:"confidence"` // 0-100 confidence score
	Reasoning   string  `json:"reasoning"`
}

// recommendCategory asks provider for a recommendation under a timeout.
func recommendCategory(
	ctx context.Context,
	provider AIProvider,
	expense ExpenseDescription,
	tax taxonomy.Taxonomy,
) (*CategoryRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, aiRecommendationTimeout)
	defer cancel()

	recommendation, err := provider.RecommendCategory(ctx, expense, tax)
	if err != nil {
		log.Error("category recommendation failed", "error", err, "description", expense.Description)
		return nil, err
	}

	log.Debug("category recommendation succeeded",
		"category", recommendation.Category,
		"subcategory", recommendation.Subcategory,
		"confidence", recommendation.Confidence)
	return recommendation, nil
}

// formatExpenseForAI formats expense data for AI analysis.
func formatExpenseForAI(expense ExpenseDescription) string {
	amount := expense.Amount
	if amount == "" {
		amount = "unknown"
	}
	date := expense.Date
	if date == "" {
		date = "unknown"
	}

	return fmt.Sprintf(`Expense Details:
- Description: %s
- Amount: %s
- Date: %s`,
		expense.Description,
		amount,
		date,
	)
}

// formatCategoriesForAI formats available categories for AI analysis.
func formatCategoriesForAI(tax taxonomy.Taxonomy) string {
	var sb strings.Builder
	sb.WriteString("Available Categories:\n")
	for _, cat := range tax.Categories() {
		fmt.Fprintf(&sb, "- %s: %s\n", cat.Name, strings.Join(cat.Subcategories, ", "))
	}
	return sb.String()
}
