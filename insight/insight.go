// Package insight comments simulation reports in plain words using Gemini.
package insight

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used by NewAnalyst.
const DefaultModel = "gemini-2.5-flash"

// Analyst is a chat with a financial analyst reviewing simulation reports.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
}

// NewAnalyst returns an analyst using the DefaultModel.
func NewAnalyst() *Analyst {
	return &Analyst{
		ModelName: DefaultModel,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a financial analyst explaining the outcome of a dollar-cost averaging simulation
			to a retail investor.

			The report you receive compares investing the same fixed amount every period in several
			assets. Comment on which assets performed best and worst, on how volatile the path was
			if the raw data is available, and recall that dividends, fees and taxes are not included.

			Stay factual, use only the numbers from the report, and never give investment advice.
			Answer in markdown, in less than 200 words.
		`}}},
		},
	}
}

// prompt returns the user prompt for a report rendered in markdown.
func prompt(report string) string {
	var b strings.Builder
	b.WriteString("Here is the simulation report:\n\n")
	b.WriteString(report)
	b.WriteString("\n\nWhat should I take away from it?")
	return b.String()
}

// Explain asks the analyst to comment a report rendered in markdown.
func (a *Analyst) Explain(ctx context.Context, client *genai.Client, report string) (string, error) {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return "", err
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt(report)})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from %s", a.ModelName)
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
