package cache

import (
	"context"
	"fmt"
	"strconv"

	"clinic-services/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Successfully connected to Redis")

	return client, nil
}

// ReindexKey is the set holding ids of documents whose index write failed.
const ReindexKey = "documents:reindex"

// RedisReindexQueue keeps pending document ids in a Redis set, so repeated
// failures for one document collapse into a single entry.
type RedisReindexQueue struct {
	client *redis.Client
	key    string
	log    *logrus.Logger
}

func NewRedisReindexQueue(client *redis.Client, log *logrus.Logger) *RedisReindexQueue {
	return &RedisReindexQueue{client: client, key: ReindexKey, log: log}
}

func (q *RedisReindexQueue) Push(ctx context.Context, documentID int64) error {
	return q.client.SAdd(ctx, q.key, documentID).Err()
}

// Pop removes and returns up to n pending ids.
func (q *RedisReindexQueue) Pop(ctx context.Context, n int) ([]int64, error) {
	members, err := q.client.SPopN(ctx, q.key, int64(n)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("pop reindex ids: %w", err)
	}
	return q.parseIDs(members), nil
}

// parseIDs skips members that are not document ids.
func (q *RedisReindexQueue) parseIDs(members []string) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			q.log.Warnf("Dropping malformed reindex entry %q", m)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (q *RedisReindexQueue) Len(ctx context.Context) (int64, error) {
	return q.client.SCard(ctx, q.key).Result()
}
