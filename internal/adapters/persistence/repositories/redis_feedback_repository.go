package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"perceive-reports/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// redisFeedbackRepository keeps entries as JSON in a global list plus one
// list per report. Both pushes run in a MULTI/EXEC transaction.
type redisFeedbackRepository struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisFeedbackRepository creates a redis-backed feedback log under prefix
func NewRedisFeedbackRepository(rdb redis.UniversalClient, prefix string) FeedbackRepository {
	return &redisFeedbackRepository{rdb: rdb, prefix: prefix}
}

func (r *redisFeedbackRepository) allKey() string {
	return r.prefix + ":feedback"
}

func (r *redisFeedbackRepository) reportKey(reportID string) string {
	return r.prefix + ":feedback:report:" + reportID
}

// Append pushes the entry onto both lists atomically
func (r *redisFeedbackRepository) Append(ctx context.Context, entry *domain.FeedbackEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode feedback %s: %w", entry.ID, err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.allKey(), payload)
		pipe.RPush(ctx, r.reportKey(entry.ReportID), payload)
		return nil
	})
	return err
}

// ListByReportID lists entries for a report in insertion order
func (r *redisFeedbackRepository) ListByReportID(ctx context.Context, reportID string) ([]domain.FeedbackEntry, error) {
	return r.load(ctx, r.reportKey(reportID))
}

// List lists every entry in insertion order
func (r *redisFeedbackRepository) List(ctx context.Context) ([]domain.FeedbackEntry, error) {
	return r.load(ctx, r.allKey())
}

func (r *redisFeedbackRepository) load(ctx context.Context, key string) ([]domain.FeedbackEntry, error) {
	raw, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeFeedback(raw)
}

func decodeFeedback(raw []string) ([]domain.FeedbackEntry, error) {
	entries := make([]domain.FeedbackEntry, 0, len(raw))
	for i, item := range raw {
		var e domain.FeedbackEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode feedback at %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
