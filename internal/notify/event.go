package notify

//go:generate mockgen -source=event.go -destination=mocks/mock_event.go -package=mocks

import (
	"context"
	"time"
)

// EventKind - вид изменения в трекере инцидентов
type EventKind string

const (
	KindCreated EventKind = "created"
	KindStatus  EventKind = "status"
	KindDeleted EventKind = "deleted"
	KindStation EventKind = "station"
)

// ChangeEvent сообщает только о том, что состояние изменилось.
// Получатели перечитывают списки активных инцидентов и истории сами.
type ChangeEvent struct {
	Origin     string    `json:"origin"`
	Kind       EventKind `json:"kind"`
	IncidentID int64     `json:"incident_id"`
	At         time.Time `json:"at"`
}

// Publisher - канал уведомлений между экземплярами трекера
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}
