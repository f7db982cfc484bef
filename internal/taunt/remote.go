package taunt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/utils"
	"github.com/osse101/WhackALawyer_Go/internal/validation"
)

// RemoteConfig configures the chat completion client
type RemoteConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// RemoteProvider asks an OpenAI-compatible chat completion API for a taunt table
type RemoteProvider struct {
	cfg      RemoteConfig
	client   *http.Client
	validate *validator.Validate
	schema   validation.SchemaValidator
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices" validate:"required,min=1,dive"`
}

type chatChoice struct {
	Message chatReply `json:"message"`
}

type chatReply struct {
	Content string `json:"content" validate:"required"`
}

// NewRemoteProvider creates a remote provider, filling unset fields with defaults
func NewRemoteProvider(cfg RemoteConfig) *RemoteProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &RemoteProvider{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		validate: validator.New(),
		schema:   validation.NewSchemaValidator(),
	}
}

// FetchTaunts performs one chat completion call. Any failure is returned
// wrapped in ErrTauntProviderUnavailable.
func (p *RemoteProvider) FetchTaunts(ctx context.Context) (domain.TauntTable, error) {
	table, err := p.fetch(ctx)
	if err != nil {
		metrics.TauntFetches.WithLabelValues(SourceRemote, metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrTauntProviderUnavailable, err)
	}
	metrics.TauntFetches.WithLabelValues(SourceRemote, metrics.ResultSuccess).Inc()
	logger.FromContext(ctx).Info(LogMsgFetched, "source", SourceRemote, "model", p.cfg.Model)
	return table, nil
}

func (p *RemoteProvider) fetch(ctx context.Context) (domain.TauntTable, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("missing API key")
	}

	body, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion: %w", err)
	}
	if err := p.validate.Struct(completion); err != nil {
		return nil, fmt.Errorf("malformed completion: %w", err)
	}

	content := utils.StripCodeFence(completion.Choices[0].Message.Content)
	if err := p.schema.ValidateBytes([]byte(content), validation.TauntTableSchema); err != nil {
		return nil, err
	}

	var raw map[string][]string
	if err := utils.DecodeFencedJSON(content, &raw); err != nil {
		return nil, err
	}
	return tableFromRaw(raw)
}
