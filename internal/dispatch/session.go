package dispatch

import (
	"sync"

	"github.com/shenikar/jack_navigator/internal/models"
)

// Session - состояние навигации одного пользователя
type Session struct {
	mu          sync.RWMutex
	position    *models.Coordinates
	source      *models.Place
	destination *models.Place
	route       *models.Route
	arEnabled   bool
	locale      string
	primary     string
	alternate   string
}

// SessionState - снимок сессии для API
type SessionState struct {
	Position    *models.Coordinates `json:"position,omitempty"`
	Source      *models.Place       `json:"source,omitempty"`
	Destination *models.Place       `json:"destination,omitempty"`
	Route       *models.Route       `json:"route,omitempty"`
	AREnabled   bool                `json:"ar_enabled"`
	Locale      string              `json:"locale"`
}

func NewSession(primaryLocale, alternateLocale string) *Session {
	if primaryLocale == "" {
		primaryLocale = "en-US"
	}
	return &Session{
		locale:    primaryLocale,
		primary:   primaryLocale,
		alternate: alternateLocale,
	}
}

// SetPosition обновляет текущую позицию пользователя (приходит из браузера)
func (s *Session) SetPosition(location models.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = &location
}

func (s *Session) Position() (models.Coordinates, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.position == nil {
		return models.Coordinates{}, false
	}
	return *s.position, true
}

// Locale - язык синтеза речи
func (s *Session) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// ToggleLocale переключает язык между основным и альтернативным
func (s *Session) ToggleLocale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alternate == "" {
		return s.locale
	}
	if s.locale == s.primary {
		s.locale = s.alternate
	} else {
		s.locale = s.primary
	}
	return s.locale
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{
		Position:    s.position,
		Source:      s.source,
		Destination: s.destination,
		Route:       s.route,
		AREnabled:   s.arEnabled,
		Locale:      s.locale,
	}
}

func (s *Session) setSource(place models.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = &place
}

func (s *Session) setDestination(place models.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = &place
}

// endpoints возвращает точки маршрута; без заданного источника используется текущая позиция
func (s *Session) endpoints() (src, dst models.Coordinates, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destination == nil {
		return src, dst, false
	}
	switch {
	case s.source != nil:
		src = s.source.Location
	case s.position != nil:
		src = *s.position
	default:
		return src, dst, false
	}
	return src, s.destination.Location, true
}

func (s *Session) setRoute(route *models.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = route
}

// clearRoute сбрасывает маршрут и сообщает, был ли он
func (s *Session) clearRoute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.route != nil
	s.route = nil
	return had
}

func (s *Session) toggleAR() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arEnabled = !s.arEnabled
	return s.arEnabled
}
