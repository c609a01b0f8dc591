package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements Extractor using Gemini schema-guided generation.
// The response schema pins the model output to the structured content shape.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the Gemini extraction backend.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: modelName}, nil
}

// Extract sends the captured page text to Gemini and parses the JSON reply
// into the structured schema.
func (g *GeminiExtractor) Extract(ctx context.Context, capture *pageCapture) (*StructuredContent, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = structuredSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(extractionPrompt(capture)))
	if err != nil {
		return nil, fmt.Errorf("gemini extraction failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("gemini returned empty extraction for %s", capture.URL)
	}

	var content StructuredContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	if content.Title == "" {
		content.Title = capture.Title
	}
	return &content, nil
}

// Close releases the underlying API client.
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}

// structuredSchema is the response schema for structured extraction.
func structuredSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":         {Type: genai.TypeString},
			"main_concepts": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"code_examples": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"api_methods": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"signature":   {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
				},
			},
			"dependencies": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	}
}

// extractionPrompt flattens the capture into a prompt for the model.
func extractionPrompt(capture *pageCapture) string {
	var sb strings.Builder
	sb.WriteString("Extract the key information from this technical documentation page.\n")
	sb.WriteString("Identify main concepts, code examples, API methods, and library dependencies.\n\n")
	sb.WriteString("Page title: " + capture.Title + "\n")
	sb.WriteString("URL: " + capture.URL + "\n\n")

	for _, b := range capture.Blocks {
		switch b.Kind {
		case blockHeading:
			sb.WriteString("\n" + strings.Repeat("#", b.Level) + " " + b.Text + "\n")
		case blockCode:
			sb.WriteString("\n```\n" + b.Text + "\n```\n")
		default:
			sb.WriteString(b.Text + "\n")
		}
	}
	return sb.String()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
