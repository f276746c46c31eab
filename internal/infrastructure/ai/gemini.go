package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const defaultModel = "gemini-1.5-flash"

const promptTemplate = `You are an expert HR Consultant writing executive recognition summaries.

Input Data:
%s

Tasks:
1. "summary": Write a polished, professional 1-sentence summary (max 35 words).
   - The input contains "Focus: Category (Metric) -> Reason".
   - Naturally weave these keywords into the sentence.
   - Do NOT start with "Praised for...". Use active verbs like "Recognized for driving...", "Commended for...", "Highlighted for...".
   - Example Output: "Recognized for driving Innovation & Growth by implementing Digital Transformation initiatives that significantly accelerated product development cycles."

2. "sentiment": strictly one of ["Positive", "Neutral", "Negative"].

Output Format:
Return strictly a raw JSON array of objects with keys: "id", "summary", "sentiment".`

// GeminiAnalyzer annotates nomination write-ups with summaries and sentiment
// using the Gemini API in JSON mode.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &GeminiAnalyzer{client: client, model: model}, nil
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, inputs []ports.SentimentInput) ([]ports.SentimentResult, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode inputs: %w", err)
	}

	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(promptTemplate, payload)))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	var results []ports.SentimentResult
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &results); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	return results, nil
}

func (a *GeminiAnalyzer) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
