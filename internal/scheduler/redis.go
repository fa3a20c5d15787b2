package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tannerdj/wokelens/internal/logger"
)

// popDueScript atomically removes and returns all members whose due time has
// passed, so two worker processes never pop the same job twice.
var popDueScript = redis.NewScript(`
local due = redis.call("ZRANGEBYSCORE", KEYS[1], "-inf", ARGV[1], "LIMIT", 0, ARGV[2])
if #due > 0 then
  redis.call("ZREM", KEYS[1], unpack(due))
end
return due
`)

// RedisScheduler is a Redis-backed delayed job trigger. Jobs live in a sorted
// set scored by their due time; a polling loop pops due members and hands
// them to the worker handler.
type RedisScheduler struct {
	client       *redis.Client
	key          string
	pollInterval time.Duration
	batchSize    int64
}

// RedisSchedulerConfig holds configuration for the Redis scheduler.
type RedisSchedulerConfig struct {
	Addr         string
	Password     string
	DB           int
	Key          string
	PollInterval time.Duration
}

// NewRedisScheduler creates a Redis-backed delayed trigger.
func NewRedisScheduler(cfg *RedisSchedulerConfig) (*RedisScheduler, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = "wokelens:analysis:due"
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}

	return &RedisScheduler{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		key:          key,
		pollInterval: pollInterval,
		batchSize:    32,
	}, nil
}

// Schedule enqueues a one-shot analysis job due after delay.
func (s *RedisScheduler) Schedule(ctx context.Context, photoID string, delay time.Duration) (Job, error) {
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return Job{}, errors.New("photoId required")
	}

	job := Job{
		ID:      uuid.New().String(),
		PhotoID: photoID,
	}
	due := time.Now().Add(delay)

	if err := s.client.ZAdd(ctx, s.key, redis.Z{
		Score:  float64(due.UnixMilli()),
		Member: encodeJob(job),
	}).Err(); err != nil {
		return Job{}, fmt.Errorf("failed to schedule analysis job: %w", err)
	}

	logger.With(logger.Fields{
		logger.FieldPhotoID: photoID,
		logger.FieldJobID:   job.ID,
		"delay_ms":          delay.Milliseconds(),
	}).Info(ctx, "photo_analysis_scheduled")

	return job, nil
}

// Run polls for due jobs until ctx is cancelled, invoking handler for each.
// Jobs are handled sequentially in pop order; there is no worker pool and no
// retry on handler failure.
func (s *RedisScheduler) Run(ctx context.Context, handler Handler) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		jobs, err := s.popDue(ctx)
		if err != nil {
			logger.CtxError(ctx, "failed to poll for due analysis jobs: %v", err)
			continue
		}

		for _, job := range jobs {
			jobCtx := logger.WithFields(ctx, logger.Fields{
				logger.FieldJobID:   job.ID,
				logger.FieldPhotoID: job.PhotoID,
			})
			handler(jobCtx, job)
		}
	}
}

// popDue removes and returns every job whose due time has passed.
func (s *RedisScheduler) popDue(ctx context.Context) ([]Job, error) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	raw, err := popDueScript.Run(ctx, s.client, []string{s.key}, now, s.batchSize).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	jobs := make([]Job, 0, len(raw))
	for _, member := range raw {
		job, ok := decodeJob(member)
		if !ok {
			logger.CtxWarn(ctx, "dropping malformed scheduled job member: %q", member)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Close releases the underlying Redis connection.
func (s *RedisScheduler) Close() error {
	return s.client.Close()
}

func encodeJob(job Job) string {
	return job.ID + "|" + job.PhotoID
}

func decodeJob(member string) (Job, bool) {
	id, photoID, ok := strings.Cut(member, "|")
	if !ok || id == "" || photoID == "" {
		return Job{}, false
	}
	return Job{ID: id, PhotoID: photoID}, true
}
