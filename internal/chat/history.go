package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"jobhound-ingest/internal/config"
)

// Message is a single conversation entry.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// History stores per-session conversation transcripts.
type History interface {
	// Append records a message at the end of the session transcript.
	Append(ctx context.Context, sessionID string, msg Message) error

	// Recent returns up to n trailing messages for the session, oldest
	// first. An unknown session yields an empty slice.
	Recent(ctx context.Context, sessionID string, n int) ([]Message, error)
}

// MemoryHistory keeps transcripts in process memory.
type MemoryHistory struct {
	mu       sync.RWMutex
	sessions map[string][]Message
}

// NewMemoryHistory creates an empty in-memory history
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: make(map[string][]Message)}
}

func (h *MemoryHistory) Append(ctx context.Context, sessionID string, msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sessionID] = append(h.sessions[sessionID], msg)
	return nil
}

func (h *MemoryHistory) Recent(ctx context.Context, sessionID string, n int) ([]Message, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msgs := h.sessions[sessionID]
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}

	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// RedisHistory persists transcripts as JSON blobs with a sliding TTL, so a
// session survives process restarts but expires after inactivity.
type RedisHistory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHistory creates a Redis-backed history from configuration
func NewRedisHistory(cfg *config.Config) (*RedisHistory, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout

	return &RedisHistory{
		client: redis.NewClient(opts),
		ttl:    cfg.Chat.SessionTTL,
	}, nil
}

func sessionKey(sessionID string) string {
	return "chat:session:" + sessionID
}

func (h *RedisHistory) Append(ctx context.Context, sessionID string, msg Message) error {
	msgs, err := h.load(ctx, sessionID)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	payload, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to marshal session transcript: %w", err)
	}

	if err := h.client.Set(ctx, sessionKey(sessionID), payload, h.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session transcript: %w", err)
	}
	return nil
}

func (h *RedisHistory) Recent(ctx context.Context, sessionID string, n int) ([]Message, error) {
	msgs, err := h.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return msgs, nil
}

func (h *RedisHistory) load(ctx context.Context, sessionID string) ([]Message, error) {
	payload, err := h.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session transcript: %w", err)
	}

	var msgs []Message
	if err := json.Unmarshal([]byte(payload), &msgs); err != nil {
		return nil, fmt.Errorf("corrupt session transcript: %w", err)
	}
	return msgs, nil
}

// Ping tests the Redis connection
func (h *RedisHistory) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (h *RedisHistory) Close() error {
	return h.client.Close()
}
