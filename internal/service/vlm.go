package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tannerdj/wokelens/internal/prompts"
)

// VLMService handles image description generation using Vision Language Models.
type VLMService struct {
	client    *resty.Client
	model     string
	endpoint  string
	maxTokens int
}

// VLMConfig holds configuration for VLM service.
type VLMConfig struct {
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// APIError is a failed response from the VLM endpoint. It keeps the HTTP
// status and the provider's error code so callers can classify the failure.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("VLM API returned HTTP %d", e.StatusCode)
}

// NewVLMService creates a new VLM service.
// Parameters:
//   - cfg: VLM configuration including model, API key, and token budget.
//
// Returns:
//   - *VLMService: initialized VLM client wrapper.
func NewVLMService(cfg *VLMConfig) *VLMService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// Set timeout to prevent hanging requests
	client.SetTimeout(60 * time.Second)

	// Default to OpenAI compatible endpoint if not specified
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 128
	}

	return &VLMService{
		client:    client,
		model:     cfg.Model,
		endpoint:  baseURL + "/chat/completions",
		maxTokens: maxTokens,
	}
}

// GetModel returns the model name being used.
func (s *VLMService) GetModel() string {
	return s.model
}

// OpenAI-compatible Chat Completion API request/response structures
type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string        `json:"role"`
	Content []interface{} `json:"content"`
}

type openAITextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type openAIImageContent struct {
	Type     string         `json:"type"`
	ImageURL openAIImageURL `json:"image_url"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// DescribeImage generates a description for an image using the fixed prompt.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imageData: raw image bytes (jpg, png, gif, webp).
//   - mimeType: MIME type of the image bytes.
//
// Returns:
//   - string: generated description text, whitespace-trimmed; the fixed
//     placeholder when the completion came back empty.
//   - error: *APIError on an upstream rejection, transport error otherwise.
func (s *VLMService) DescribeImage(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	base64Image := base64.StdEncoding.EncodeToString(imageData)
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64Image)

	req := openAIRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{
				Role: "user",
				Content: []interface{}{
					openAITextContent{
						Type: "text",
						Text: prompts.DescribePrompt,
					},
					openAIImageContent{
						Type:     "image_url",
						ImageURL: openAIImageURL{URL: dataURI},
					},
				},
			},
		},
		MaxTokens: s.maxTokens,
	}

	var resp openAIResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(s.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call VLM API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		apiErr := &APIError{StatusCode: httpResp.StatusCode()}
		if resp.Error != nil {
			apiErr.Code = resp.Error.Code
			apiErr.Message = resp.Error.Message
		}
		return "", apiErr
	}

	if resp.Error != nil {
		return "", &APIError{
			StatusCode: httpResp.StatusCode(),
			Code:       resp.Error.Code,
			Message:    resp.Error.Message,
		}
	}

	if len(resp.Choices) == 0 {
		return "", &APIError{
			StatusCode: httpResp.StatusCode(),
			Message:    "no choices in VLM response",
		}
	}

	description := strings.TrimSpace(resp.Choices[0].Message.Content)
	if description == "" {
		return prompts.EmptyDescription, nil
	}
	return description, nil
}
