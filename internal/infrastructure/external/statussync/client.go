// Package statussync implements the status-sync callback client.
// After an approval is recorded, the engine notifies an external endpoint
// that the student's displayed approval flag should be refreshed. The call
// is best-effort: failures are logged and never affect the approval itself.
package statussync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
	"github.com/curso-hub/curso-learning-hub/pkg/circuitbreaker"
	"github.com/curso-hub/curso-learning-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains configuration for the status-sync client.
type Config struct {
	// BaseURL is the callback endpoint base URL.
	BaseURL string

	// APIKey is an optional bearer token for the callback endpoint.
	APIKey string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// RetryConfig controls retry behavior for transient failures.
	RetryConfig retry.Config

	// BreakerConfig protects the approval path from a dead endpoint.
	BreakerConfig circuitbreaker.Config
}

// DefaultConfig returns sensible defaults for the given endpoint.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		RetryConfig:   retry.DefaultConfig(),
		BreakerConfig: circuitbreaker.DefaultConfig("statussync"),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client delivers approval notifications over HTTP. It implements
// progress.Notifier.
type Client struct {
	config     Config
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
	logger     *zap.Logger
}

// NewClient creates a status-sync client.
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		breaker: circuitbreaker.New(config.BreakerConfig),
		logger:  logger,
	}
}

type approvedPayload struct {
	ProfessorID int64 `json:"professorId"`
	CourseID    int64 `json:"courseId"`
	StudentID   int64 `json:"studentId"`
	Approved    bool  `json:"approved"`
}

// StudentApproved posts the approval event to the callback endpoint.
// Transient failures are retried with backoff; 4xx responses are treated
// as permanent and returned immediately.
func (c *Client) StudentApproved(ctx context.Context, professorID int64, courseID course.ID, studentID student.ID) error {
	payload := approvedPayload{
		ProfessorID: professorID,
		CourseID:    int64(courseID),
		StudentID:   int64(studentID),
		Approved:    true,
	}

	retryConfig := c.config.RetryConfig
	retryConfig.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.logger.Warn("status sync retry",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Int64("student_id", int64(studentID)),
			zap.Int64("course_id", int64(courseID)),
			zap.Error(err))
	}

	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, retryConfig, func(ctx context.Context) error {
			return c.post(ctx, payload)
		})
	})
}

func (c *Client) post(ctx context.Context, payload approvedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return retry.Permanent(fmt.Errorf("marshal payload: %w", err))
	}

	url := c.config.BaseURL + "/status-sync/approved"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return retry.Permanent(fmt.Errorf("status sync rejected: status %d", resp.StatusCode))
	default:
		return fmt.Errorf("status sync failed: status %d", resp.StatusCode)
	}
}
