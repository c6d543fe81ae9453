package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/jack_navigator/internal/alert"
	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/metrics"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/notify"
	"github.com/sirupsen/logrus"
)

// ErrInvalidCoordinates возвращается при создании инцидента с некорректными координатами
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ErrInvalidStatus возвращается при попытке выставить неизвестный статус
var ErrInvalidStatus = errors.New("invalid status")

// IncidentRepository определяет контракт персистентного хранилища инцидентов.
// Методы изменения возвращают nil, если инцидента с таким id нет.
// UpdateStatus и Delete атомарно с изменением добавляют запись в историю
// (снимок после смены статуса и снимок до удаления соответственно).
type IncidentRepository interface {
	NextID(ctx context.Context) (int64, error)
	Save(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) (*models.Incident, error)
	UpdateStation(ctx context.Context, id int64, station string) (bool, error)
	Delete(ctx context.Context, id int64, at time.Time) (*models.Incident, error)
	ListActive(ctx context.Context) ([]*models.Incident, error)
	ListHistory(ctx context.Context) ([]*models.HistoryEntry, error)
}

// StationLocator ищет имя ближайшего полицейского участка
type StationLocator interface {
	NearestStation(ctx context.Context, location models.Coordinates) (string, error)
}

// IncidentService определяет контракт трекера SOS-инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, lat, lng float64) (*models.Incident, error)
	SetStatus(ctx context.Context, id int64, status models.Status) error
	DeleteIncident(ctx context.Context, id int64) error
	RefreshStation(ctx context.Context, id int64) (bool, error)
	ListActive(ctx context.Context) ([]*models.Incident, error)
	ListHistory(ctx context.Context) ([]*models.HistoryEntry, error)
	Stats(ctx context.Context) (models.StatusCounts, error)
	ExportHistoryCSV(ctx context.Context, w io.Writer) error
}

type incidentService struct {
	repo     IncidentRepository
	logger   *logrus.Logger
	cfg      *config.Config
	notifier notify.Publisher
	locator  StationLocator
	alerts   alert.Publisher
	origin   string
	now      func() time.Time
}

func NewIncidentService(
	repo IncidentRepository,
	logger *logrus.Logger,
	cfg *config.Config,
	notifier notify.Publisher,
	locator StationLocator,
	alerts alert.Publisher,
) IncidentService {
	return &incidentService{
		repo:     repo,
		logger:   logger,
		cfg:      cfg,
		notifier: notifier,
		locator:  locator,
		alerts:   alerts,
		origin:   uuid.NewString(),
		now:      time.Now,
	}
}

// CreateIncident создает SOS-инцидент в статусе Pending
func (s *incidentService) CreateIncident(ctx context.Context, lat, lng float64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"lat":     lat,
		"lng":     lng,
	})
	log.Info("Attempting to create a new incident")

	location := models.Coordinates{Lat: lat, Lng: lng}
	if !location.Finite() {
		log.Warn("Rejected incident with invalid coordinates")
		return nil, ErrInvalidCoordinates
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to allocate incident id")
		return nil, fmt.Errorf("service: could not allocate incident id: %w", err)
	}

	incident := &models.Incident{
		ID:        id,
		Location:  location,
		Timestamp: s.now().UTC(),
		Status:    models.StatusPending,
	}
	if err := s.repo.Save(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to save incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	metrics.IncidentsCreated.Inc()
	log.WithField("incident_id", id).Info("Incident created successfully")
	s.publish(ctx, notify.KindCreated, id)

	if s.alerts != nil {
		sos := alert.SOSAlert{
			IncidentID: id,
			Latitude:   lat,
			Longitude:  lng,
			Message:    s.cfg.SOSMessage,
			MapsURL:    location.MapsURL(),
			Timestamp:  incident.Timestamp,
		}
		if err := s.alerts.Publish(ctx, sos); err != nil {
			log.WithError(err).Warn("Failed to enqueue sos alert")
		}
	}
	return incident, nil
}

// SetStatus меняет статус инцидента; неизвестный id - не ошибка
func (s *incidentService) SetStatus(ctx context.Context, id int64, status models.Status) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "SetStatus",
		"incident_id": id,
		"status":      status,
	})
	parsed, ok := models.ParseStatus(string(status))
	if !ok {
		return ErrInvalidStatus
	}
	status = parsed

	updated, err := s.repo.UpdateStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		log.WithError(err).Error("Failed to update incident status in repository")
		return fmt.Errorf("service: could not update incident status: %w", err)
	}
	if updated == nil {
		log.Debug("Incident not found, status change skipped")
		return nil
	}

	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()
	log.Info("Incident status updated")
	s.publish(ctx, notify.KindStatus, id)
	return nil
}

// DeleteIncident убирает инцидент из активных и пишет его последний снимок в историю
func (s *incidentService) DeleteIncident(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})

	removed, err := s.repo.Delete(ctx, id, s.now().UTC())
	if err != nil {
		log.WithError(err).Error("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}
	if removed == nil {
		log.Debug("Incident not found, delete skipped")
		return nil
	}

	metrics.IncidentsDeleted.Inc()
	log.Info("Incident deleted from active")
	s.publish(ctx, notify.KindDeleted, id)
	return nil
}

// RefreshStation обновляет имя ближайшего участка для инцидента в статусе Pending.
// Результат поиска отбрасывается, если к его приходу инцидент уже не Pending.
func (s *incidentService) RefreshStation(ctx context.Context, id int64) (bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "RefreshStation",
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get incident from repository")
		return false, fmt.Errorf("service: could not get incident: %w", err)
	}
	if incident == nil || incident.Status != models.StatusPending {
		metrics.StationRefreshes.WithLabelValues("skipped").Inc()
		return false, nil
	}

	station, err := s.locator.NearestStation(ctx, incident.Location)
	if err != nil {
		metrics.StationRefreshes.WithLabelValues("error").Inc()
		metrics.ExternalFailures.WithLabelValues("station").Inc()
		log.WithError(err).Warn("Nearest station lookup failed")
		return false, fmt.Errorf("service: station lookup failed: %w", err)
	}

	changed, err := s.repo.UpdateStation(ctx, id, station)
	if err != nil {
		log.WithError(err).Error("Failed to update nearest station in repository")
		return false, fmt.Errorf("service: could not update nearest station: %w", err)
	}
	if !changed {
		metrics.StationRefreshes.WithLabelValues("unchanged").Inc()
		return false, nil
	}

	metrics.StationRefreshes.WithLabelValues("changed").Inc()
	log.WithField("station", station).Info("Nearest station updated")
	s.publish(ctx, notify.KindStation, id)
	return true, nil
}

// ListActive возвращает активные инциденты в порядке создания
func (s *incidentService) ListActive(ctx context.Context) ([]*models.Incident, error) {
	incidents, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("method", "ListActive").Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}

// ListHistory возвращает журнал действий в порядке добавления
func (s *incidentService) ListHistory(ctx context.Context) ([]*models.HistoryEntry, error) {
	history, err := s.repo.ListHistory(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("method", "ListHistory").Error("Failed to list history from repository")
		return nil, fmt.Errorf("service: could not list history: %w", err)
	}
	return history, nil
}

// Stats считает активные инциденты по статусам
func (s *incidentService) Stats(ctx context.Context) (models.StatusCounts, error) {
	incidents, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(models.StatusCounts, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		counts[st] = 0
	}
	for _, incident := range incidents {
		status := incident.Status
		if status == "" {
			status = models.StatusPending
		}
		counts[status]++
	}
	return counts, nil
}

const csvTimeLayout = "2006-01-02 15:04:05"

// ExportHistoryCSV пишет историю в CSV для выгрузки с дашборда
func (s *incidentService) ExportHistoryCSV(ctx context.Context, w io.Writer) error {
	history, err := s.ListHistory(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Latitude", "Longitude", "Original Time", "Action", "Action Time"}); err != nil {
		return fmt.Errorf("service: could not write csv header: %w", err)
	}
	for _, h := range history {
		record := []string{
			strconv.FormatInt(h.Incident.ID, 10),
			strconv.FormatFloat(h.Incident.Location.Lat, 'f', -1, 64),
			strconv.FormatFloat(h.Incident.Location.Lng, 'f', -1, 64),
			h.Incident.Timestamp.Format(csvTimeLayout),
			h.Action,
			h.ActionTime.Format(csvTimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("service: could not write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// publish рассылает уведомление; ошибка доставки не откатывает локальное изменение
func (s *incidentService) publish(ctx context.Context, kind notify.EventKind, id int64) {
	if s.notifier == nil {
		return
	}
	event := notify.ChangeEvent{
		Origin:     s.origin,
		Kind:       kind,
		IncidentID: id,
		At:         s.now().UTC(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"service":     "incident",
			"incident_id": id,
			"kind":        kind,
		}).Warn("Failed to publish change event")
	}
}
