// Package alert доставляет SOS-тревоги родственникам через внешний вебхук (SMS-шлюз).
package alert

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	alertQueueSuffix = ":alerts"
)

// SOSAlert - структура данных тревоги для вебхука
type SOSAlert struct {
	IncidentID int64     `json:"incident_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Message    string    `json:"message"`
	MapsURL    string    `json:"maps_url"`
	Timestamp  time.Time `json:"timestamp"`
}

// Text - текст SMS, который получит родственник
func (a SOSAlert) Text() string {
	return fmt.Sprintf("SOS ALERT\n%s\nLocation: %s", a.Message, a.MapsURL)
}

// Publisher - интерфейс для постановки тревог в очередь доставки
type Publisher interface {
	Publish(ctx context.Context, alert SOSAlert) error
}

// RedisPublisher - реализация Publisher, использующая список Redis как очередь
type RedisPublisher struct {
	redisClient *redis.Client
	queueKey    string
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client, keyPrefix string) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
		queueKey:    keyPrefix + alertQueueSuffix,
	}
}

// Publish добавляет тревогу в левую часть списка (очереди)
func (p *RedisPublisher) Publish(ctx context.Context, alert SOSAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal sos alert: %w", err)
	}

	if err := p.redisClient.LPush(ctx, p.queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish sos alert to Redis: %w", err)
	}
	return nil
}
