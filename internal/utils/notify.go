package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding

	"github.com/redis/go-redis/v9" // Redis client
)

// NotificationChannel is the Redis pub/sub channel friend events are published on
const NotificationChannel = "notifications"

// Notification operations
const (
	OpRequest  = "REQUEST"
	OpAccepted = "ACCEPTED"
)

// Notification is the envelope published for a friend-request event
type Notification struct {
	Type      string `json:"type"`      // Always "friend-request"
	Operation string `json:"operation"` // REQUEST or ACCEPTED
	UserID    uint   `json:"user_id"`   // User the event is addressed to
	Payload   any    `json:"payload"`   // Event details
}

// Publish sends n on NotificationChannel. A nil client drops the event.
func Publish(ctx context.Context, rdb *redis.Client, n Notification) error {
	if rdb == nil {
		return nil
	}
	if n.Type == "" {
		n.Type = "friend-request"
	}
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, NotificationChannel, b).Err()
}
