package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/enums"
	"github.com/froliik/froliik-backend/pkg/logger"
)

// QuestPrompt carries the user preferences that shape the generated text.
type QuestPrompt struct {
	Category     enums.QuestCategory
	Difficulty   enums.Difficulty
	Tone         string
	DurationHint string
	LocationHint string
	RecentTitles []string
}

// QuestText is the model output used to build a quest.
type QuestText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Texter produces quest title/description text. The template generator is the
// mandatory fallback when a Texter is unavailable or errors.
type Texter interface {
	GenerateQuestText(ctx context.Context, prompt QuestPrompt) (*QuestText, error)
}

var (
	errAPIKeyRequired = errors.New("openai api key is required")
	errEmptyResponse  = errors.New("openai returned no choices")
)

const systemPrompt = "You write short, uplifting real-world quests for a life gamification app. " +
	"Respond with a JSON object containing \"title\" (max 60 chars) and \"description\" (1-2 sentences)."

// Client calls the OpenAI chat completions API over plain HTTP.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient validates the config and builds the chat completions client.
func NewClient(cfg config.OpenAIConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logg,
	}, nil
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateQuestText asks the model for a quest title and description.
func (c *Client) GenerateQuestText(ctx context.Context, prompt QuestPrompt) (*QuestText, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(prompt)},
		},
		Temperature:    0.9,
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("openai %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("openai returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, errEmptyResponse
	}

	var text QuestText
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &text); err != nil {
		return nil, fmt.Errorf("decode quest text: %w", err)
	}
	text.Title = strings.TrimSpace(text.Title)
	text.Description = strings.TrimSpace(text.Description)
	if text.Title == "" || text.Description == "" {
		return nil, fmt.Errorf("openai returned incomplete quest text")
	}

	if c.logger != nil {
		logCtx := c.logger.WithFields(ctx, map[string]any{"model": c.model, "category": prompt.Category})
		c.logger.Info(logCtx, "quest text generated")
	}

	return &text, nil
}

func buildUserPrompt(prompt QuestPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s quest in the %s category.", prompt.Difficulty, prompt.Category)
	if tone := strings.TrimSpace(prompt.Tone); tone != "" {
		fmt.Fprintf(&b, " Tone: %s.", tone)
	}
	if dur := strings.TrimSpace(prompt.DurationHint); dur != "" {
		fmt.Fprintf(&b, " It should take about %s.", dur)
	}
	if loc := strings.TrimSpace(prompt.LocationHint); loc != "" {
		fmt.Fprintf(&b, " Location context: %s.", loc)
	}
	if len(prompt.RecentTitles) > 0 {
		fmt.Fprintf(&b, " Avoid repeating these recent quests: %s.", strings.Join(prompt.RecentTitles, "; "))
	}
	return b.String()
}
