// Package notify доставляет уведомления об изменениях инцидентов между процессами и браузерами.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisNotifier публикует события изменений через Redis Pub/Sub
type RedisNotifier struct {
	redisClient *redis.Client
	channel     string
	logger      *logrus.Logger
}

// NewRedisNotifier создает новый RedisNotifier
func NewRedisNotifier(client *redis.Client, channel string, logger *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{
		redisClient: client,
		channel:     channel,
		logger:      logger,
	}
}

// Publish публикует событие в канал
func (n *RedisNotifier) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	if err := n.redisClient.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event to Redis: %w", err)
	}
	return nil
}

// Subscribe запускает горутину, передающую события из канала обработчику до отмены контекста
func (n *RedisNotifier) Subscribe(ctx context.Context, handle func(ChangeEvent)) {
	log := n.logger.WithFields(logrus.Fields{
		"component": "notify",
		"channel":   n.channel,
	})
	pubsub := n.redisClient.Subscribe(ctx, n.channel)
	log.Info("Subscribed to change channel")

	go func() {
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Info("Stopping change subscriber.")
				return
			case msg, ok := <-messages:
				if !ok {
					log.Warn("Change channel closed")
					return
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.WithError(err).Warn("Skipping malformed change event")
					continue
				}
				handle(event)
			}
		}
	}()
}
