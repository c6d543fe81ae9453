package v1

import (
	"time"

	"github.com/shenikar/jack_navigator/internal/dispatch"
	"github.com/shenikar/jack_navigator/internal/intent"
)

// CreateIncidentRequest DTO для создания SOS-инцидента
// @Description DTO для создания SOS-инцидента
type CreateIncidentRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// UpdateStatusRequest DTO для смены статуса
// @Description DTO для смены статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID             int64     `json:"id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
	NearestStation *string   `json:"nearest_station"`
	MapsURL        string    `json:"maps_url"`
}

// HistoryEntryResponse DTO записи журнала
// @Description DTO записи журнала
type HistoryEntryResponse struct {
	Incident   IncidentResponse `json:"incident"`
	Action     string           `json:"action"`
	ActionTime time.Time        `json:"action_time"`
}

// RefreshResponse DTO результата обновления участка
type RefreshResponse struct {
	Changed bool `json:"changed"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// TranscriptRequest DTO распознанной фразы
// @Description DTO распознанной фразы
type TranscriptRequest struct {
	Text string `json:"text" validate:"required,max=512"`
}

// TranscriptResponse DTO результата обработки фразы
// @Description DTO результата обработки фразы
type TranscriptResponse struct {
	Ignored bool            `json:"ignored"`
	Command *intent.Command `json:"command,omitempty"`
	Reply   string          `json:"reply,omitempty"`
}

// PositionRequest DTO текущей позиции пользователя
// @Description DTO текущей позиции пользователя
type PositionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// LocaleResponse DTO текущего языка синтеза речи
type LocaleResponse struct {
	Locale string `json:"locale"`
}

// SessionResponse DTO состояния навигационной сессии
type SessionResponse = dispatch.SessionState

// PointDTO - точка маршрута
type PointDTO struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// RouteRequest DTO для построения маршрута
// @Description DTO для построения маршрута
type RouteRequest struct {
	Source      PointDTO `json:"source"`
	Destination PointDTO `json:"destination"`
	Traffic     bool     `json:"traffic"`
}

// LocationQuery - координаты из query string
type LocationQuery struct {
	Latitude  *float64 `form:"lat" validate:"required,latitude"`
	Longitude *float64 `form:"lng" validate:"required,longitude"`
}

// AmenityQuery - параметры поиска объектов
type AmenityQuery struct {
	LocationQuery
	Kind string `form:"kind" validate:"required,alpha,max=32"`
}
