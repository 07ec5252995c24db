package jobqueue

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

const (
	defaultQueueName  = "tournament:recalc"
	retrySuffix       = ":retry"
	dlqSuffix         = ":dlq"
	attemptsSuffix    = ":attempts"
	dedupSuffix       = ":dedup:"
	defaultMaxRetries = 3
	defaultDedupTTL   = 2 * time.Minute
	brPopBlock        = 5 * time.Second
	attemptsTTL       = 24 * time.Hour
)

type RedisQueueConfig struct {
	Name       string
	MaxRetries int
	// DedupTTL is how long a dedup key blocks identical jobs.
	DedupTTL time.Duration
	Workers  int
}

// Handler processes one decoded job. A returned error schedules a retry.
type Handler func(ctx context.Context, job usecase.RecalcJob) error

// RedisQueue is the recalc job queue. Jobs are LPUSHed onto a list and
// BRPOPed by the worker; failed jobs move to the retry list and, after
// MaxRetries attempts, to the dead letter list.
type RedisQueue struct {
	client     redis.UniversalClient
	name       string
	maxRetries int
	dedupTTL   time.Duration
	workers    int
	logger     *logging.Logger
}

func NewRedisQueue(client redis.UniversalClient, cfg RedisQueueConfig, logger *logging.Logger) *RedisQueue {
	if logger == nil {
		logger = logging.Default()
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultQueueName
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	dedupTTL := cfg.DedupTTL
	if dedupTTL <= 0 {
		dedupTTL = defaultDedupTTL
	}
	return &RedisQueue{
		client:     client,
		name:       name,
		maxRetries: maxRetries,
		dedupTTL:   dedupTTL,
		workers:    max(cfg.Workers, 1),
		logger:     logger.Named("queue"),
	}
}

// Enqueue pushes the job unless a job with the same dedup key was pushed
// within DedupTTL.
func (q *RedisQueue) Enqueue(ctx context.Context, job usecase.RecalcJob) error {
	payload, err := encodeJob(job)
	if err != nil {
		return err
	}

	if job.DedupKey != "" {
		fresh, err := q.client.SetNX(ctx, q.dedupKey(job.DedupKey), job.ID, q.dedupTTL).Result()
		if err != nil {
			return fmt.Errorf("redis SETNX dedup: %w", err)
		}
		if !fresh {
			q.logger.InfoContext(ctx, "duplicate job dropped", "job_id", job.ID, "dedup_key", job.DedupKey)
			return nil
		}
	}

	if err := q.client.LPush(ctx, q.name, payload).Err(); err != nil {
		return fmt.Errorf("redis LPUSH %s: %w", q.name, err)
	}
	return nil
}

// Consume delivers jobs to handler until ctx is canceled. With more than
// one worker, jobs run on an ants pool.
func (q *RedisQueue) Consume(ctx context.Context, handler Handler) error {
	pool, err := ants.NewPool(q.workers, ants.WithNonblocking(false))
	if err != nil {
		return fmt.Errorf("create queue worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	defer wg.Wait()

	q.logger.InfoContext(ctx, "queue consumer started", "queue", q.name, "workers", q.workers)
	for {
		if ctx.Err() != nil {
			q.logger.WarnContext(ctx, "queue consumer exiting", "error", ctx.Err())
			return ctx.Err()
		}

		result, err := q.client.BRPop(ctx, brPopBlock, q.retryKey(), q.name).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			q.logger.WarnContext(ctx, "redis BRPOP failed", "error", err)
			continue
		}
		if len(result) < 2 {
			continue
		}

		payload := []byte(result[1])
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			q.process(ctx, payload, handler)
		}); err != nil {
			wg.Done()
			q.logger.ErrorContext(ctx, "submit queue job failed", "error", err)
			q.scheduleRetry(ctx, payload)
		}
	}
}

func (q *RedisQueue) process(ctx context.Context, payload []byte, handler Handler) {
	job, err := decodeJob(payload)
	if err != nil {
		q.logger.ErrorContext(ctx, "undecodable job moved to DLQ", "error", err)
		if err := q.client.LPush(ctx, q.dlqKey(), payload).Err(); err != nil {
			q.logger.ErrorContext(ctx, "redis LPUSH dlq failed", "error", err)
		}
		return
	}

	if err := handler(ctx, job); err != nil {
		q.logger.WarnContext(ctx, "job failed, scheduling retry", "job_id", job.ID, "type", string(job.Type), "error", err)
		q.scheduleRetry(ctx, payload)
		return
	}
	if err := q.client.HDel(ctx, q.attemptsKey(), payloadDigest(payload)).Err(); err != nil {
		q.logger.WarnContext(ctx, "clear retry counter failed", "job_id", job.ID, "error", err)
	}
}

func (q *RedisQueue) scheduleRetry(ctx context.Context, payload []byte) {
	if err := q.handleRetry(ctx, payload); err != nil {
		q.logger.ErrorContext(ctx, "retry handling failed", "error", err)
	}
}

func (q *RedisQueue) handleRetry(ctx context.Context, payload []byte) error {
	digest := payloadDigest(payload)
	attempt, err := q.client.HIncrBy(ctx, q.attemptsKey(), digest, 1).Result()
	if err != nil {
		return fmt.Errorf("redis HINCRBY attempts: %w", err)
	}
	_ = q.client.Expire(ctx, q.attemptsKey(), attemptsTTL).Err()

	if !shouldRetry(attempt, q.maxRetries) {
		q.logger.WarnContext(ctx, "moving job to DLQ", "attempts", attempt)
		_ = q.client.HDel(ctx, q.attemptsKey(), digest).Err()
		return q.client.LPush(ctx, q.dlqKey(), payload).Err()
	}
	return q.client.LPush(ctx, q.retryKey(), payload).Err()
}

func (q *RedisQueue) retryKey() string    { return q.name + retrySuffix }
func (q *RedisQueue) dlqKey() string      { return q.name + dlqSuffix }
func (q *RedisQueue) attemptsKey() string { return q.name + attemptsSuffix }

func (q *RedisQueue) dedupKey(key string) string {
	return q.name + dedupSuffix + key
}

// shouldRetry reports whether a job that has failed attempt times gets
// another run.
func shouldRetry(attempt int64, maxRetries int) bool {
	return attempt <= int64(maxRetries)
}

func payloadDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func encodeJob(job usecase.RecalcJob) ([]byte, error) {
	if _, ok := usecase.ParseRecalcJobType(string(job.Type)); !ok {
		return nil, fmt.Errorf("%w: unknown job type %q", usecase.ErrInvalidInput, job.Type)
	}
	payload, err := sonic.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}
	return payload, nil
}

func decodeJob(payload []byte) (usecase.RecalcJob, error) {
	var job usecase.RecalcJob
	if err := sonic.Unmarshal(payload, &job); err != nil {
		return usecase.RecalcJob{}, fmt.Errorf("decode job: %w", err)
	}
	kind, ok := usecase.ParseRecalcJobType(string(job.Type))
	if !ok {
		return usecase.RecalcJob{}, fmt.Errorf("unknown job type %q", job.Type)
	}
	job.Type = kind
	return job, nil
}
