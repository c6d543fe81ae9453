package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/service"
)

const incidentColumns = `id, latitude, longitude, created_at, status, nearest_station`

// pgxPool - подмножество *pgxpool.Pool, которое нужно репозиторию
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type IncidentRepository struct {
	db pgxPool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return newIncidentRepository(db)
}

func newIncidentRepository(db pgxPool) *IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

// NextID берет следующее значение последовательности; значения не переиспользуются
func (r *IncidentRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('sos_incident_id_seq');`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate incident id: %w", err)
	}
	return id, nil
}

// Save создает запись об инциденте в бд
func (r *IncidentRepository) Save(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO sos_incidents (id, latitude, longitude, created_at, status, nearest_station)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		incident.ID,
		incident.Location.Lat,
		incident.Location.Lng,
		incident.Timestamp,
		string(incident.Status),
		incident.NearestStation,
	)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по id или nil, если его нет
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM sos_incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// UpdateStatus меняет статус и пишет журнал в одной транзакции
func (r *IncidentRepository) UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) (*models.Incident, error) {
	query := `
		UPDATE sos_incidents SET status = $1
		WHERE id = $2
		RETURNING ` + incidentColumns + `;
	`
	var updated *models.Incident
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		incident, err := scanIncident(tx.QueryRow(ctx, query, string(status), id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		if err := appendHistory(ctx, tx, models.NewHistoryEntry(incident, models.StatusAction(status), at)); err != nil {
			return err
		}
		updated = incident
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}
	return updated, nil
}

// UpdateStation применяет имя участка, только если инцидент все еще Pending и имя отличается
func (r *IncidentRepository) UpdateStation(ctx context.Context, id int64, station string) (bool, error) {
	query := `
		UPDATE sos_incidents SET nearest_station = $1
		WHERE id = $2
			AND status = $3
			AND nearest_station IS DISTINCT FROM $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, station, id, string(models.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to update nearest station: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Delete удаляет инцидент, пишет журнал и возвращает состояние до удаления
func (r *IncidentRepository) Delete(ctx context.Context, id int64, at time.Time) (*models.Incident, error) {
	query := `DELETE FROM sos_incidents WHERE id = $1 RETURNING ` + incidentColumns + `;`
	var removed *models.Incident
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		incident, err := scanIncident(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		if err := appendHistory(ctx, tx, models.NewHistoryEntry(incident, models.ActionDeleted, at)); err != nil {
			return err
		}
		removed = incident
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete incident: %w", err)
	}
	return removed, nil
}

// ListActive возвращает активные инциденты в порядке создания
func (r *IncidentRepository) ListActive(ctx context.Context) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM sos_incidents ORDER BY id ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// appendHistory добавляет снимок в журнал внутри транзакции изменения
func appendHistory(ctx context.Context, tx pgx.Tx, entry *models.HistoryEntry) error {
	query := `
		INSERT INTO sos_history (incident_id, latitude, longitude, created_at, status, nearest_station, action, action_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		entry.Incident.ID,
		entry.Incident.Location.Lat,
		entry.Incident.Location.Lng,
		entry.Incident.Timestamp,
		string(entry.Incident.Status),
		entry.Incident.NearestStation,
		entry.Action,
		entry.ActionTime,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// ListHistory возвращает журнал в порядке добавления
func (r *IncidentRepository) ListHistory(ctx context.Context) ([]*models.HistoryEntry, error) {
	query := `
		SELECT incident_id, latitude, longitude, created_at, status, nearest_station, action, action_time
		FROM sos_history
		ORDER BY seq ASC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	history := make([]*models.HistoryEntry, 0)
	for rows.Next() {
		entry := &models.HistoryEntry{}
		var status string
		err := rows.Scan(
			&entry.Incident.ID,
			&entry.Incident.Location.Lat,
			&entry.Incident.Location.Lng,
			&entry.Incident.Timestamp,
			&status,
			&entry.Incident.NearestStation,
			&entry.Action,
			&entry.ActionTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.Incident.Status = models.Status(status)
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error history iteration: %w", err)
	}
	return history, nil
}

func (r *IncidentRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var status string
	err := row.Scan(
		&incident.ID,
		&incident.Location.Lat,
		&incident.Location.Lng,
		&incident.Timestamp,
		&status,
		&incident.NearestStation,
	)
	if err != nil {
		return nil, err
	}
	incident.Status = models.Status(status)
	return incident, nil
}
