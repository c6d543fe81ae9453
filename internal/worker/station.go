// Package worker содержит фоновые таймеры трекера инцидентов.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/notify"
	"github.com/shenikar/jack_navigator/internal/service"
	"github.com/sirupsen/logrus"
)

// StationRefresher уточняет ближайший участок для инцидентов в статусе Pending:
// сразу после создания и затем по таймеру
type StationRefresher struct {
	incidents service.IncidentService
	interval  time.Duration
	logger    *logrus.Logger

	// mu защищает stopped и wg.Add от гонки с wg.Wait при остановке
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

func NewStationRefresher(incidents service.IncidentService, interval time.Duration, logger *logrus.Logger) *StationRefresher {
	if interval <= 0 {
		interval = 3 * time.Minute
	}
	return &StationRefresher{
		incidents: incidents,
		interval:  interval,
		logger:    logger,
	}
}

// Start запускает периодическое обновление до отмены контекста
func (r *StationRefresher) Start(ctx context.Context) {
	r.logger.WithField("interval", r.interval.String()).Info("Station refresher started")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.stopped = true
			r.mu.Unlock()
			r.wg.Wait()
			r.logger.Info("Station refresher stopped")
			return
		case <-ticker.C:
			r.RefreshPending(ctx)
		}
	}
}

// HandleEvent запускает поиск участка для только что созданного инцидента, не блокируя вызывающего.
// После остановки Start события игнорируются.
func (r *StationRefresher) HandleEvent(ctx context.Context, event notify.ChangeEvent) {
	if event.Kind != notify.KindCreated {
		return
	}
	r.mu.Lock()
	if r.stopped || ctx.Err() != nil {
		r.mu.Unlock()
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()
	go func() {
		defer r.wg.Done()
		r.refresh(ctx, event.IncidentID)
	}()
}

// RefreshPending обновляет все инциденты в статусе Pending и возвращает их число
func (r *StationRefresher) RefreshPending(ctx context.Context) int {
	active, err := r.incidents.ListActive(ctx)
	if err != nil {
		r.logger.WithError(err).WithField("component", "station_refresher").Error("Failed to list active incidents")
		return 0
	}

	pending := 0
	for _, incident := range active {
		if incident.Status != models.StatusPending {
			continue
		}
		pending++
		r.refresh(ctx, incident.ID)
	}
	return pending
}

// Wait ждет завершения запущенных из HandleEvent обновлений
func (r *StationRefresher) Wait() {
	r.wg.Wait()
}

func (r *StationRefresher) refresh(ctx context.Context, id int64) {
	if _, err := r.incidents.RefreshStation(ctx, id); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"component":   "station_refresher",
			"incident_id": id,
		}).Warn("Station refresh failed")
	}
}
