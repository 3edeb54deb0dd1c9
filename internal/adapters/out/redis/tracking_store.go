// Package redis keeps live courier positions of orders on the way.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 10 * time.Minute

type position struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingStore implements ports.TrackingStore. Each entry expires after ttl
// so positions of orders the job stopped touching do not linger.
type TrackingStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.TrackingStore = (*TrackingStore)(nil)

func NewTrackingStore(client *redis.Client, ttl time.Duration) *TrackingStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TrackingStore{client: client, ttl: ttl}
}

func (s *TrackingStore) Save(ctx context.Context, orderID kernel.UUID, location kernel.Location) error {
	data, err := json.Marshal(position{
		Lat:        location.Lat(),
		Lng:        location.Lng(),
		RecordedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal position failed: %w", err)
	}

	if err = s.client.Set(ctx, trackingKey(orderID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *TrackingStore) Get(ctx context.Context, orderID kernel.UUID) (kernel.Location, bool, error) {
	data, err := s.client.Get(ctx, trackingKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return kernel.Location{}, false, nil
	}
	if err != nil {
		return kernel.Location{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var p position
	if err = json.Unmarshal(data, &p); err != nil {
		return kernel.Location{}, false, fmt.Errorf("unmarshal position failed: %w", err)
	}

	location, err := kernel.NewLocation(p.Lat, p.Lng)
	if err != nil {
		return kernel.Location{}, false, err
	}
	return location, true, nil
}

func (s *TrackingStore) Delete(ctx context.Context, orderID kernel.UUID) error {
	if err := s.client.Del(ctx, trackingKey(orderID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func trackingKey(orderID kernel.UUID) string {
	return fmt.Sprintf("tracking:order:%s", orderID.String())
}
