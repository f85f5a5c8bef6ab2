package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	reloadStream     = "stats.reload.basketball_nba"
	predictionStream = "stats.predictions.basketball_nba"
)

// RedisPublisher publishes engine events to Redis streams so downstream
// consumers (broadcasters, alerting) can react to snapshot reloads and
// fresh predictions.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher with its own Redis connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// NewRedisStreamPublisher wraps an existing client instead of dialing a new
// connection.
func NewRedisStreamPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishReload announces a completed index rebuild.
func (rp *RedisPublisher) PublishReload(ctx context.Context, summary interface{}) error {
	return rp.publish(ctx, reloadStream, summary)
}

// PublishPrediction publishes one computed matchup prediction.
func (rp *RedisPublisher) PublishPrediction(ctx context.Context, prediction interface{}) error {
	return rp.publish(ctx, predictionStream, prediction)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
