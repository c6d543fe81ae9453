package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/service"
	"github.com/sirupsen/logrus"
)

// RedisIncidentRepository хранит инциденты в Redis:
// счетчик id - строка с INCR, каждый инцидент - отдельный ключ с JSON,
// индекс активных - sorted set со score = id, история - список.
type RedisIncidentRepository struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	keyPrefix   string
	counterKey  string
	activeKey   string
	historyKey  string
}

func NewRedisIncidentRepository(redisClient *redis.Client, keyPrefix string, logger *logrus.Logger) service.IncidentRepository {
	return &RedisIncidentRepository{
		redisClient: redisClient,
		logger:      logger,
		keyPrefix:   keyPrefix,
		counterKey:  keyPrefix + ":last_id",
		activeKey:   keyPrefix + ":active",
		historyKey:  keyPrefix + ":history",
	}
}

// NextID атомарно увеличивает персистентный счетчик
func (r *RedisIncidentRepository) NextID(ctx context.Context) (int64, error) {
	id, err := r.redisClient.Incr(ctx, r.counterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment incident counter: %w", err)
	}
	return id, nil
}

// Save записывает инцидент и добавляет его id в индекс активных
func (r *RedisIncidentRepository) Save(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident: %w", err)
	}
	_, err = r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.incidentKey(incident.ID), val, 0)
		pipe.ZAdd(ctx, r.activeKey, redis.Z{Score: float64(incident.ID), Member: member(incident.ID)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save incident: %w", err)
	}
	return nil
}

// GetByID возвращает активный инцидент или nil, если его нет
func (r *RedisIncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, r.incidentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return r.decodeIncident(r.incidentKey(id), val), nil
}

// UpdateStatus меняет статус и в той же транзакции пишет запись в журнал.
// Если инцидент уже удален, возвращает nil.
func (r *RedisIncidentRepository) UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) (*models.Incident, error) {
	var updated *models.Incident
	err := r.watchIncident(ctx, id, func(tx *redis.Tx, incident *models.Incident) error {
		updated = nil
		if incident == nil {
			return nil
		}
		incident.Status = status
		val, err := json.Marshal(incident)
		if err != nil {
			return err
		}
		entry, err := json.Marshal(models.NewHistoryEntry(incident, models.StatusAction(status), at))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.incidentKey(id), val, 0)
			pipe.RPush(ctx, r.historyKey, entry)
			return nil
		})
		if err == nil {
			updated = incident
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}
	return updated, nil
}

// UpdateStation записывает имя участка, только если инцидент все еще Pending и имя новое
func (r *RedisIncidentRepository) UpdateStation(ctx context.Context, id int64, station string) (bool, error) {
	var changed bool
	err := r.watchIncident(ctx, id, func(tx *redis.Tx, incident *models.Incident) error {
		changed = false
		if incident == nil || incident.Status != models.StatusPending || incident.StationName() == station {
			return nil
		}
		incident.NearestStation = &station
		val, err := json.Marshal(incident)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.incidentKey(id), val, 0)
			return nil
		})
		changed = err == nil
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to update nearest station: %w", err)
	}
	return changed, nil
}

// Delete удаляет инцидент из активных, пишет журнал и возвращает последнее состояние
func (r *RedisIncidentRepository) Delete(ctx context.Context, id int64, at time.Time) (*models.Incident, error) {
	var removed *models.Incident
	err := r.watchIncident(ctx, id, func(tx *redis.Tx, incident *models.Incident) error {
		removed = nil
		if incident == nil {
			return nil
		}
		entry, err := json.Marshal(models.NewHistoryEntry(incident, models.ActionDeleted, at))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, r.incidentKey(id))
			pipe.ZRem(ctx, r.activeKey, member(id))
			pipe.RPush(ctx, r.historyKey, entry)
			return nil
		})
		if err == nil {
			removed = incident
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete incident: %w", err)
	}
	return removed, nil
}

// ListActive возвращает активные инциденты по возрастанию id
func (r *RedisIncidentRepository) ListActive(ctx context.Context) ([]*models.Incident, error) {
	ids, err := r.redisClient.ZRange(ctx, r.activeKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Incident{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.keyPrefix + ":incident:" + id
	}
	values, err := r.redisClient.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load incidents: %w", err)
	}
	return r.decodeIncidents(keys, values), nil
}

// ListHistory возвращает журнал в порядке добавления
func (r *RedisIncidentRepository) ListHistory(ctx context.Context) ([]*models.HistoryEntry, error) {
	values, err := r.redisClient.LRange(ctx, r.historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return r.decodeHistory(values), nil
}

// watchIncident выполняет fn под WATCH ключа одного инцидента.
// Конфликт с другим писателем того же инцидента повторяется до отмены ctx.
func (r *RedisIncidentRepository) watchIncident(ctx context.Context, id int64, fn func(tx *redis.Tx, incident *models.Incident) error) error {
	key := r.incidentKey(id)
	txf := func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fn(tx, nil)
			}
			return err
		}
		return fn(tx, r.decodeIncident(key, val))
	}

	for {
		err := r.redisClient.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.logger.WithField("incident_id", id).Debug("Incident changed concurrently, retrying transaction")
	}
}

func (r *RedisIncidentRepository) incidentKey(id int64) string {
	return r.keyPrefix + ":incident:" + member(id)
}

// Поврежденные записи пропускаются, как будто их нет

func (r *RedisIncidentRepository) decodeIncident(key string, val []byte) *models.Incident {
	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Skipping corrupt incident record")
		return nil
	}
	return incident
}

// decodeIncidents разбирает ответ MGET; ключи, удаленные между ZRANGE и MGET, приходят как nil
func (r *RedisIncidentRepository) decodeIncidents(keys []string, values []interface{}) []*models.Incident {
	incidents := make([]*models.Incident, 0, len(values))
	for i, val := range values {
		raw, ok := val.(string)
		if !ok {
			continue
		}
		if incident := r.decodeIncident(keys[i], []byte(raw)); incident != nil {
			incidents = append(incidents, incident)
		}
	}
	return incidents
}

func (r *RedisIncidentRepository) decodeHistory(values []string) []*models.HistoryEntry {
	history := make([]*models.HistoryEntry, 0, len(values))
	for i, val := range values {
		entry := &models.HistoryEntry{}
		if err := json.Unmarshal([]byte(val), entry); err != nil {
			r.logger.WithError(err).WithField("index", i).Warn("Skipping corrupt history record")
			continue
		}
		history = append(history, entry)
	}
	return history
}

func member(id int64) string {
	return strconv.FormatInt(id, 10)
}
