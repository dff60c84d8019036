package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/metrics"
)

const extractPrompt = "Please analyze this image and list only the visible food ingredients. " +
	"Format the response as a simple comma-separated list of ingredients. " +
	"Only include clearly visible ingredients."

// ClientConfig configures the vision HTTP client
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the chat completions endpoint of an OpenAI-compatible API
// with the image inlined as a data URL.
type Client struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

// NewClient creates a new vision client
func NewClient(cfg ClientConfig, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &Client{
		client: client,
		model:  cfg.Model,
		log:    log,
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the image to the model and parses its comma-separated answer
func (c *Client) Extract(ctx context.Context, image []byte) ([]string, error) {
	if err := ValidateImage(image); err != nil {
		return nil, err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(image), base64.StdEncoding.EncodeToString(image))
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: extractPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
		MaxTokens: 300,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		metrics.RecordVisionRequest("error", time.Since(start))
		return nil, fmt.Errorf("failed to send request to vision API: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		metrics.RecordVisionRequest("error", time.Since(start))
		c.log.Warn("vision API returned an error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", truncate(resp.String(), 200)),
		)
		return nil, fmt.Errorf("vision API returned status %d", resp.StatusCode())
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		metrics.RecordVisionRequest("error", time.Since(start))
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}
	if len(result.Choices) == 0 {
		metrics.RecordVisionRequest("error", time.Since(start))
		return nil, fmt.Errorf("no choices in vision response")
	}

	ingredients := ParseIngredients(result.Choices[0].Message.Content)
	if len(ingredients) == 0 {
		metrics.RecordVisionRequest("empty", time.Since(start))
		return nil, ErrNoIngredientsDetected
	}

	metrics.RecordVisionRequest("success", time.Since(start))
	c.log.Debug("extracted ingredients from image", zap.Int("count", len(ingredients)))
	return ingredients, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
