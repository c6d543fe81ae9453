package models

import (
	"strings"
	"time"

	"github.com/mohae/deepcopy"
)

// Status - стадия обработки SOS-инцидента
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// AllStatuses перечисляет статусы в порядке отображения на дашборде
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusResolved}

// ParseStatus разбирает статус без учета регистра, допускает "in_progress" и "inprogress"
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "in progress", "in_progress", "inprogress", "progress":
		return StatusInProgress, true
	case "resolved":
		return StatusResolved, true
	}
	return "", false
}

const (
	ActionDeleted       = "Deleted from active"
	actionStatusSetTmpl = "Status set to "
)

// StatusAction формирует текст действия для истории при смене статуса
func StatusAction(s Status) string {
	return actionStatusSetTmpl + string(s)
}

// Incident - одна SOS-тревога от создания до удаления
type Incident struct {
	ID             int64       `json:"id"`
	Location       Coordinates `json:"location"`
	Timestamp      time.Time   `json:"timestamp"`
	Status         Status      `json:"status"`
	NearestStation *string     `json:"nearest_station"`
}

// StationName возвращает имя ближайшего участка или пустую строку, если оно еще не найдено
func (i *Incident) StationName() string {
	if i.NearestStation == nil {
		return ""
	}
	return *i.NearestStation
}

// HistoryEntry - неизменяемый снимок инцидента на момент действия
type HistoryEntry struct {
	Incident   Incident  `json:"incident"`
	Action     string    `json:"action"`
	ActionTime time.Time `json:"action_time"`
}

// NewHistoryEntry снимает копию инцидента; снимок не разделяет указатели с живым инцидентом
func NewHistoryEntry(incident *Incident, action string, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		Incident:   deepcopy.Copy(*incident).(Incident),
		Action:     action,
		ActionTime: at,
	}
}

// StatusCounts - количество активных инцидентов по статусам (для графика)
type StatusCounts map[Status]int
