package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"

	neutralScore = 0.5
)

var (
	ErrEmptyText            = errors.New("sentiment text is empty")
	ErrSentimentUnavailable = errors.New("sentiment upstream unavailable")
)

// Result is the normalized classification returned to API callers.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type upstreamRequest struct {
	Inputs string `json:"inputs"`
}

type upstreamLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type CallRecorder interface {
	RecordSentimentCall(outcome string)
}

// Client talks to a hosted text-classification endpoint.
type Client struct {
	httpClient *resty.Client
	recorder   CallRecorder
	logger     *zap.Logger
}

func NewClient(endpoint string, token string, recorder CallRecorder, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(15 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode() >= 500)
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if strings.TrimSpace(token) != "" {
		httpClient.SetAuthToken(token)
	}

	return &Client{
		httpClient: httpClient,
		recorder:   recorder,
		logger:     logger,
	}
}

// SetRetryWaitTime overrides the backoff between retries.
func (c *Client) SetRetryWaitTime(wait time.Duration) *Client {
	c.httpClient.SetRetryWaitTime(wait).SetRetryMaxWaitTime(wait)
	return c
}

// Analyze classifies text. Upstream bodies that cannot be interpreted yield
// a neutral result; transport failures and 5xx replies return
// ErrSentimentUnavailable.
func (c *Client) Analyze(ctx context.Context, text string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, ErrEmptyText
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(upstreamRequest{Inputs: trimmed}).
		Post("")
	if err != nil {
		c.logger.Error("sentiment upstream call failed", zap.Error(err))
		c.record("error")
		return Result{}, fmt.Errorf("%w: %v", ErrSentimentUnavailable, err)
	}
	if resp.StatusCode() >= 500 {
		c.logger.Error("sentiment upstream returned server error",
			zap.Int("status_code", resp.StatusCode()),
		)
		c.record("error")
		return Result{}, fmt.Errorf("%w: status %d", ErrSentimentUnavailable, resp.StatusCode())
	}
	if resp.IsError() {
		c.logger.Warn("sentiment upstream rejected request",
			zap.Int("status_code", resp.StatusCode()),
		)
		c.record("neutral")
		return NeutralResult(), nil
	}

	result, ok := ParseUpstream(resp.Body())
	if !ok {
		c.logger.Warn("sentiment upstream returned unexpected body",
			zap.Int("body_bytes", len(resp.Body())),
		)
		c.record("neutral")
		return result, nil
	}
	c.record("ok")
	return result, nil
}

func NeutralResult() Result {
	return Result{Label: LabelNeutral, Score: neutralScore}
}

// ParseUpstream accepts either a nested [[{label,score}]] or a flat
// [{label,score}] body and picks the highest-scoring label.
func ParseUpstream(body []byte) (Result, bool) {
	var nested [][]upstreamLabel
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return pickBest(nested[0])
	}

	var flat []upstreamLabel
	if err := json.Unmarshal(body, &flat); err == nil {
		return pickBest(flat)
	}
	return NeutralResult(), false
}

// NormalizeLabel maps a raw model label by case-insensitive substring.
func NormalizeLabel(raw string) string {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "POS"):
		return LabelPositive
	case strings.Contains(upper, "NEG"):
		return LabelNegative
	default:
		return LabelNeutral
	}
}

func pickBest(candidates []upstreamLabel) (Result, bool) {
	if len(candidates) == 0 {
		return NeutralResult(), false
	}
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	if strings.TrimSpace(best.Label) == "" {
		return NeutralResult(), false
	}
	return Result{Label: NormalizeLabel(best.Label), Score: best.Score}, true
}

func (c *Client) record(outcome string) {
	if c.recorder != nil {
		c.recorder.RecordSentimentCall(outcome)
	}
}
