package services

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// PhotoCheckResult mirrors the expected JSON from the vision model.
type PhotoCheckResult struct {
	ConstructionSiteVisible bool   `json:"construction_site_visible"`
	MatchesDescription      bool   `json:"matches_description"`
	Notes                   string `json:"notes,omitempty"`
}

// OpenAIService wraps the OpenAI client. If client is nil, checks are
// skipped and submissions auto-accept.
type OpenAIService struct {
	client *openai.Client
}

// NewOpenAIService creates the service. Pass an empty apiKey to disable calls.
func NewOpenAIService(apiKey string) *OpenAIService {
	if apiKey == "" {
		return &OpenAIService{client: nil}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{client: &c}
}

// CheckProgressPhoto asks the vision model whether the image at the
// given URL plausibly shows an infrastructure work site matching the
// submitted description.
func (s *OpenAIService) CheckProgressPhoto(
	ctx context.Context,
	imageURL string,
	description string,
) (*PhotoCheckResult, error) {

	// Feature disabled; auto-accept.
	if s.client == nil {
		return &PhotoCheckResult{
			ConstructionSiteVisible: true,
			MatchesDescription:      true,
		}, nil
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"construction_site_visible": map[string]string{"type": "boolean"},
			"matches_description":       map[string]string{"type": "boolean"},
			"notes":                     map[string]string{"type": "string"},
		},
		"required":             []string{"construction_site_visible", "matches_description"},
		"additionalProperties": false,
	}

	prompt := fmt.Sprintf(
		"You are reviewing a progress photo submitted for a public infrastructure project. "+
			"Submitted description: %q. Answer strictly in the JSON schema: does the photo show "+
			"an infrastructure work site, and is it consistent with the description?",
		description,
	)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4o,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				}),
			}),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "progress_photo_check",
					Schema: schema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	var result PhotoCheckResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("could not parse vision response: %w", err)
	}
	return &result, nil
}
