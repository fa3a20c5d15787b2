// Package watch fans out photo status transitions to live subscribers. The
// worker publishes a record's terminal transition through Redis pub/sub and
// the API streams it to watching clients, so a subscription survives the
// worker and API living in different processes.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/logger"
)

// Event is one observed status transition of a photo record.
type Event struct {
	PhotoID     string             `json:"photo_id"`
	Status      domain.PhotoStatus `json:"status"`
	Description string             `json:"description,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Hub publishes and subscribes photo status events over Redis pub/sub.
type Hub struct {
	client *redis.Client
	prefix string
}

// HubConfig holds configuration for the watch hub.
type HubConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewHub creates a Redis-backed watch hub.
func NewHub(cfg *HubConfig) (*Hub, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "wokelens:photo:status"
	}

	return &Hub{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}, nil
}

// Publish broadcasts an event to every subscriber of the photo.
func (h *Hub) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode status event: %w", err)
	}
	if err := h.client.Publish(ctx, h.channel(event.PhotoID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of status events for one photo. The channel
// closes when ctx is cancelled or the returned stop function is called.
func (h *Hub) Subscribe(ctx context.Context, photoID string) (<-chan Event, func()) {
	sub := h.client.Subscribe(ctx, h.channel(photoID))
	events := make(chan Event, 4)

	go func() {
		defer close(events)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.CtxWarn(ctx, "dropping malformed status event: %v", err)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	stop := func() {
		_ = sub.Close()
	}
	return events, stop
}

// Close releases the underlying Redis connection.
func (h *Hub) Close() error {
	return h.client.Close()
}

func (h *Hub) channel(photoID string) string {
	return h.prefix + ":" + photoID
}
