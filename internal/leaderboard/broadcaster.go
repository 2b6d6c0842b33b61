package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/ecoquest/pkg/game"
)

// ActivityChannel is the Pub/Sub channel that carries activity from every session.
const ActivityChannel = "ecoquest:activity"

// Activity is the published form of a game event.
type Activity struct {
	SessionID uuid.UUID      `json:"session_id"`
	Player    string         `json:"player"`
	Event     game.EventType `json:"event"`
	Mission   string         `json:"mission,omitempty"`
	Delta     int            `json:"delta,omitempty"`
	Points    int            `json:"points"`
	Level     int            `json:"level"`
	Score     int            `json:"score,omitempty"`
}

// Broadcasts reports whether an event type is worth publishing. Ticks,
// notifications and navigation stay local.
func Broadcasts(t game.EventType) bool {
	switch t {
	case game.EventPointsAwarded, game.EventLevelUp, game.EventMissionCompleted, game.EventQuizCompleted:
		return true
	}
	return false
}

// NewActivity converts a game event for publishing.
func NewActivity(sessionID uuid.UUID, player string, e game.Event) Activity {
	return Activity{
		SessionID: sessionID,
		Player:    player,
		Event:     e.Type,
		Mission:   string(e.Mission),
		Delta:     e.Delta,
		Points:    e.Points,
		Level:     e.Level,
		Score:     e.Score,
	}
}

// Broadcaster publishes activity to Redis Pub/Sub. A nil client makes every
// publish a no-op.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new activity broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Enabled reports whether publishes reach Redis.
func (b *Broadcaster) Enabled() bool {
	return b != nil && b.redisClient != nil
}

// Publish sends a to the global channel and the session's own channel.
func (b *Broadcaster) Publish(ctx context.Context, a Activity) error {
	if !b.Enabled() {
		return nil
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal activity: %w", err)
	}

	for _, channel := range []string{ActivityChannel, SessionChannel(a.SessionID)} {
		if err := b.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
			b.logger.Error("Failed to publish activity", "channel", channel, "event", a.Event, "error", err)
			return fmt.Errorf("failed to publish activity: %w", err)
		}
	}

	b.logger.Debug("Published activity", "event", a.Event, "session_id", a.SessionID)
	return nil
}

// SessionChannel returns the Pub/Sub channel for one session.
func SessionChannel(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", ActivityChannel, sessionID)
}
