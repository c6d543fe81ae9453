package alert

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/sirupsen/logrus"
)

// SignatureHeader - заголовок с HMAC-подписью тела запроса
const SignatureHeader = "X-SOS-Signature"

// Worker забирает тревоги из очереди Redis и отправляет их на вебхук
type Worker struct {
	redisClient *redis.Client
	queueKey    string
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	sleep       func(ctx context.Context, d time.Duration)
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		queueKey:    cfg.RedisKeyPrefix + alertQueueSuffix,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Start запускает горутину обработки очереди тревог
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting sos alert worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping sos alert worker.")
				return
			default:
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, w.queueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop sos alert from Redis")
					w.sleep(ctx, w.cfg.WebhookTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var alert SOSAlert
				if err := json.Unmarshal([]byte(payload), &alert); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal sos alert from Redis")
					continue
				}

				if err := w.Deliver(ctx, alert); err != nil {
					w.logger.WithError(err).WithField("incident_id", alert.IncidentID).Error("SOS alert was not delivered")
				}
			}
		}
	}()
}

type webhookBody struct {
	SOSAlert
	Text string `json:"text"`
}

// Deliver отправляет тревогу на вебхук с экспоненциальной задержкой между попытками
func (w *Worker) Deliver(ctx context.Context, alert SOSAlert) error {
	log := w.logger.WithField("incident_id", alert.IncidentID)
	log.Debug("Processing sos alert...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping sos alert delivery.")
		return nil
	}

	rawPayload, err := json.Marshal(webhookBody{SOSAlert: alert, Text: alert.Text()})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook body: %w", err)
	}

	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			w.sleep(ctx, delay)
			delay *= 2
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		status, err := w.post(ctx, rawPayload)
		if err != nil {
			log.WithError(err).Warnf("Failed to send sos alert. Retries left: %d", maxRetries-1-i)
			continue
		}
		if status >= 200 && status < 300 {
			log.Info("SOS alert delivered successfully.")
			return nil
		}
		log.Warnf("SOS alert delivery failed with status code %d. Retries left: %d", status, maxRetries-1-i)
	}

	return fmt.Errorf("failed to deliver sos alert after %d attempts", maxRetries)
}

func (w *Worker) post(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set(SignatureHeader, generateHMACSHA256(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
