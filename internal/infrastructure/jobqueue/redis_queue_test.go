package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

func TestJobCodec(t *testing.T) {
	t.Parallel()

	job := usecase.RecalcJob{
		ID:         "job_1",
		Type:       usecase.RecalcReprocess,
		Reprocess:  &usecase.ReprocessOptions{GameIDs: []string{"8123456789"}, ForceReprocess: true},
		DedupKey:   "recalc-reprocess-job_1-20260101T000000Z",
		EnqueuedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	payload, err := encodeJob(job)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"matchIds":["8123456789"]`)

	got, err := decodeJob(payload)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	require.NotNil(t, got.Reprocess)
	assert.True(t, got.Reprocess.ForceReprocess)
	assert.True(t, got.EnqueuedAt.Equal(job.EnqueuedAt))
}

func TestJobCodec_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := encodeJob(usecase.RecalcJob{ID: "x", Type: "nope"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = decodeJob([]byte(`{"id":"x","type":"nope"}`))
	assert.Error(t, err)
	_, err = decodeJob([]byte(`not json`))
	assert.Error(t, err)
}

func TestPayloadDigest_IsStable(t *testing.T) {
	t.Parallel()

	a := payloadDigest([]byte(`{"id":"1"}`))
	assert.Len(t, a, 64)
	assert.Equal(t, a, payloadDigest([]byte(`{"id":"1"}`)))
	assert.NotEqual(t, a, payloadDigest([]byte(`{"id":"2"}`)))
}

func TestShouldRetry(t *testing.T) {
	t.Parallel()

	assert.True(t, shouldRetry(1, 3))
	assert.True(t, shouldRetry(3, 3))
	assert.False(t, shouldRetry(4, 3))
	assert.False(t, shouldRetry(1, 0))
}

func TestNewRedisQueue_Keys(t *testing.T) {
	t.Parallel()

	q := NewRedisQueue(nil, RedisQueueConfig{MaxRetries: -1}, logging.NewNop())
	assert.Equal(t, "tournament:recalc:retry", q.retryKey())
	assert.Equal(t, "tournament:recalc:dlq", q.dlqKey())
	assert.Equal(t, "tournament:recalc:attempts", q.attemptsKey())
	assert.Equal(t, "tournament:recalc:dedup:k", q.dedupKey("k"))
	assert.Equal(t, defaultMaxRetries, q.maxRetries)
	assert.Equal(t, 1, q.workers)
}
