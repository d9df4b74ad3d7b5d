package azure

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"go.uber.org/zap"
)

const apiVersion = "2024-08-01-preview"

// OpenAIClient calls an Azure OpenAI deployment for crop image analysis.
// Transient failures are retried with exponential backoff.
type OpenAIClient struct {
	client     *openai.Client
	deployment string
	logger     *zap.Logger
	attempts   int
	backoff    time.Duration
}

// NewOpenAIClient creates a new OpenAIClient against an Azure deployment
func NewOpenAIClient(endpoint, apiKey, deployment string, logger *zap.Logger) (*OpenAIClient, error) {
	if endpoint == "" || apiKey == "" || deployment == "" {
		return nil, fmt.Errorf("endpoint, apiKey, and deployment are required")
	}

	client := openai.NewClient(
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client:     &client,
		deployment: deployment,
		logger:     logger,
		attempts:   3,
		backoff:    time.Second,
	}, nil
}

// CompleteVision sends a prompt plus an inline image for multimodal analysis.
// The image travels as a base64 data URL inside the user message.
func (c *OpenAIClient) CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("image data is required")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
		}),
	}

	started := time.Now()
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := c.backoff * time.Duration(1<<uint(attempt-2))
			c.logger.Info("retrying vision request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		content, err := c.completeOnce(ctx, messages)
		if err == nil {
			c.logger.Info("vision request completed",
				zap.Duration("elapsed", time.Since(started)),
				zap.Int("attempts", attempt),
			)
			return content, nil
		}

		lastErr = err
		if permanent(err) {
			c.logger.Error("vision request rejected", zap.Error(err), zap.Int("attempt", attempt))
			break
		}
		c.logger.Warn("vision request failed, will retry", zap.Error(err), zap.Int("attempt", attempt))
	}

	return "", fmt.Errorf("vision request failed after %d attempts: %w", c.attempts, lastErr)
}

func (c *OpenAIClient) completeOnce(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.deployment),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	c.logger.Debug("token usage",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return content, nil
}

// permanent reports whether retrying cannot help: auth failures and malformed
// requests fail the same way every time.
func permanent(err error) bool {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401"), strings.Contains(msg, "unauthorized"), strings.Contains(msg, "authentication"):
		return true
	case strings.Contains(msg, "400"), strings.Contains(msg, "bad request"), strings.Contains(msg, "invalid"):
		return true
	}
	return false
}
