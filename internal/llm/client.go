// Package llm wraps the text-generation service used to filter trends,
// suggest creative typos and assess brands
package llm

import (
	"context"
	"os"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
)

const defaultTemperature = 0.7

// Completer sends a chat prompt and returns the reply parsed as JSON.
// A reply that is not valid JSON yields an empty object, not an error.
type Completer interface {
	ChatJSON(ctx context.Context, model, system, user string) (gjson.Result, error)
}

// Client is a Completer backed by an OpenAI compatible API
type Client struct {
	api         *openai.Client
	Temperature float32
}

// NewClient creates a client for apiKey; baseURL is optional
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errorutil.NewWithTag("llm", "missing api key (set OPENAI_API_KEY)")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(config), Temperature: defaultTemperature}, nil
}

// NewClientFromEnv reads OPENAI_API_KEY and OPENAI_BASE_URL
func NewClientFromEnv() (*Client, error) {
	return NewClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"))
}

func (c *Client) ChatJSON(ctx context.Context, model, system, user string) (gjson.Result, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    c.Temperature,
	})
	if err != nil {
		return gjson.Result{}, errorutil.NewWithErr(err).Msgf("chat completion with %v failed", model)
	}
	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	return parseJSON(content), nil
}

// parseJSON returns content as JSON or an empty object when malformed
func parseJSON(content string) gjson.Result {
	if content == "" {
		content = "{}"
	}
	if !gjson.Valid(content) {
		preview := content
		if len(preview) > 200 {
			preview = preview[:200]
		}
		gologger.Warning().Msgf("Failed to parse LLM response as JSON: %v", preview)
		return gjson.Parse("{}")
	}
	return gjson.Parse(content)
}
