package statussync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/pkg/circuitbreaker"
	"github.com/curso-hub/curso-learning-hub/pkg/retry"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig(baseURL)
	cfg.RetryConfig = retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	return cfg
}

func TestStudentApproved_PostsPayload(t *testing.T) {
	var got approvedPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/status-sync/approved", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())

	err := client.StudentApproved(context.Background(), 10001, 7, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(10001), got.ProfessorID)
	assert.Equal(t, int64(7), got.CourseID)
	assert.Equal(t, int64(42), got.StudentID)
	assert.True(t, got.Approved)
}

func TestStudentApproved_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())

	err := client.StudentApproved(context.Background(), 10001, 7, 42)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestStudentApproved_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())

	err := client.StudentApproved(context.Background(), 10001, 7, 42)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestStudentApproved_BreakerOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BreakerConfig.FailureThreshold = 2
	client := NewClient(cfg, zap.NewNop())

	ctx := context.Background()
	require.Error(t, client.StudentApproved(ctx, 10001, 7, 42))
	require.Error(t, client.StudentApproved(ctx, 10001, 7, 42))

	err := client.StudentApproved(ctx, 10001, 7, 42)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}
