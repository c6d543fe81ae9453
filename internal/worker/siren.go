package worker

import (
	"context"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/service"
	"github.com/sirupsen/logrus"
)

// Siren проигрывает сигнал тревоги у наблюдателей
type Siren interface {
	Siren(ctx context.Context)
}

// SirenLoop напоминает о необработанных инцидентах, пока есть хотя бы один Pending
type SirenLoop struct {
	incidents service.IncidentService
	siren     Siren
	interval  time.Duration
	logger    *logrus.Logger
}

func NewSirenLoop(incidents service.IncidentService, siren Siren, interval time.Duration, logger *logrus.Logger) *SirenLoop {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SirenLoop{
		incidents: incidents,
		siren:     siren,
		interval:  interval,
		logger:    logger,
	}
}

func (l *SirenLoop) Start(ctx context.Context) {
	l.logger.WithField("interval", l.interval.String()).Info("Siren loop started")
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Siren loop stopped")
			return
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick включает сирену, если есть инциденты в статусе Pending
func (l *SirenLoop) Tick(ctx context.Context) bool {
	active, err := l.incidents.ListActive(ctx)
	if err != nil {
		l.logger.WithError(err).WithField("component", "siren_loop").Error("Failed to list active incidents")
		return false
	}
	for _, incident := range active {
		if incident.Status == models.StatusPending {
			l.siren.Siren(ctx)
			return true
		}
	}
	return false
}
