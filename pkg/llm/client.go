// Package llm provides a client for interacting with Large Language Models.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"yojna-mitra-go/internal/config"
)

// defaultSystemPrompt 是内置的系统提示词，可通过配置 llm.prompt.system 覆盖。
const defaultSystemPrompt = "You are Yojna Mitra, an expert assistant for Indian Government schemes. " +
	"Always reply in the same language as the user. " +
	"Provide clear, structured answers."

// Client defines the interface for an LLM client.
type Client interface {
	// Complete 将单条用户消息发送给补全接口并返回助手文本。
	// 只发送最新一条用户消息，不携带历史。language 非空时会在
	// 系统消息中追加回复语言偏好。
	Complete(ctx context.Context, userMessage, language string) (string, error)
}

type groqClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient creates a new LLM client for an OpenAI-compatible endpoint.
func NewClient(cfg config.LLMConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		// 提供商无响应时不允许无限期阻塞请求协程
		timeout = 60 * time.Second
	}
	return &groqClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Message 表示一条角色消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete calls the chat completions API with a single user message.
func (c *groqClient) Complete(ctx context.Context, userMessage, language string) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: c.systemMessage(language)},
			{Role: "user", Content: userMessage},
		},
	}
	// 从配置注入生成参数（若非零值）
	if c.cfg.Generation.Temperature != 0 {
		t := c.cfg.Generation.Temperature
		reqBody.Temperature = &t
	}
	if c.cfg.Generation.TopP != 0 {
		p := c.cfg.Generation.TopP
		reqBody.TopP = &p
	}
	if c.cfg.Generation.MaxTokens != 0 {
		m := c.cfg.Generation.MaxTokens
		reqBody.MaxTokens = &m
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat api returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// systemMessage 组装系统消息，language 非空时追加回复语言偏好。
func (c *groqClient) systemMessage(language string) string {
	system := c.cfg.Prompt.System
	if system == "" {
		system = defaultSystemPrompt
	}
	if language != "" {
		system += " The user prefers replies in " + language + "."
	}
	return system
}
