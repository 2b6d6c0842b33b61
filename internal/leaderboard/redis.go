package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	scoresKey    = "ecoquest:leaderboard"
	playerPrefix = "ecoquest:player:"
)

// RedisStore implements Store with a sorted set of scores and one hash per
// session.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStore implements Store interface
var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for leaderboard", "addr", opt.Addr)

	return &RedisStore{
		client: rdb,
		logger: logger,
		ttl:    30 * 24 * time.Hour,
	}, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Record(ctx context.Context, e Entry) error {
	key := playerPrefix + e.SessionID.String()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, scoresKey, redis.Z{Score: float64(e.Points), Member: e.SessionID.String()})
		pipe.HSet(ctx, key,
			"player", e.Player,
			"points", e.Points,
			"level", e.Level,
			"completed", strings.Join(e.Completed, ","),
			"updated_at", e.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to record standing", "session_id", e.SessionID, "error", err)
		return fmt.Errorf("failed to record standing: %w", err)
	}

	r.logger.Debug("Recorded standing", "session_id", e.SessionID, "points", e.Points)
	return nil
}

func (r *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	scores, err := r.client.ZRevRangeWithScores(ctx, scoresKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	out := make([]Entry, 0, len(scores))
	for _, z := range scores {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			r.logger.Warn("Skipping malformed leaderboard member", "member", member)
			continue
		}
		fields, err := r.client.HGetAll(ctx, playerPrefix+member).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read standing %s: %w", member, err)
		}
		out = append(out, entryFromHash(id, int(z.Score), fields))
	}
	return out, nil
}

func entryFromHash(id uuid.UUID, points int, fields map[string]string) Entry {
	e := Entry{
		SessionID: id,
		Player:    fields["player"],
		Points:    points,
	}
	if e.Player == "" {
		e.Player = "anonymous"
	}
	if lvl, err := strconv.Atoi(fields["level"]); err == nil {
		e.Level = lvl
	}
	if c := fields["completed"]; c != "" {
		e.Completed = strings.Split(c, ",")
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["updated_at"]); err == nil {
		e.UpdatedAt = ts
	}
	return e
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	r.logger.Info("Redis connection closed")
	return nil
}

// Client returns the underlying Redis client.
func (r *RedisStore) Client() *redis.Client {
	return r.client
}
