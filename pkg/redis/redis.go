package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	labelMappingsKey = "labels:custom"
	latestReportKey  = "safety:latest_report"
)

type IRedis interface {
	SetLabelMappings(ctx context.Context, mappings map[string]string) error
	GetLabelMappings(ctx context.Context) (map[string]string, error)
	SetLatestReport(ctx context.Context, payload []byte, expiration time.Duration) error
	GetLatestReport(ctx context.Context) ([]byte, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

// SetLabelMappings replaces the operator label-mapping table as one hash.
func (r *redisClient) SetLabelMappings(ctx context.Context, mappings map[string]string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, labelMappingsKey)
	if len(mappings) > 0 {
		values := make(map[string]interface{}, len(mappings))
		for k, v := range mappings {
			values[k] = v
		}
		pipe.HSet(ctx, labelMappingsKey, values)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Error(fmt.Sprintf("Error storing label mappings: %v", err))
		return err
	}
	return nil
}

func (r *redisClient) GetLabelMappings(ctx context.Context) (map[string]string, error) {
	mappings, err := r.client.HGetAll(ctx, labelMappingsKey).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error loading label mappings: %v", err))
		return nil, err
	}
	return mappings, nil
}

func (r *redisClient) SetLatestReport(ctx context.Context, payload []byte, expiration time.Duration) error {
	if err := r.client.Set(ctx, latestReportKey, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching latest report: %v", err))
		return err
	}
	return nil
}

// GetLatestReport returns the cached report payload, or nil when the cache
// is cold so the caller can fall back to the database.
func (r *redisClient) GetLatestReport(ctx context.Context) ([]byte, error) {
	payload, err := r.client.Get(ctx, latestReportKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logrus.Error(fmt.Sprintf("Error reading latest report cache: %v", err))
		return nil, err
	}
	return payload, nil
}
