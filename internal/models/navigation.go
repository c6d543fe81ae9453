package models

import (
	"fmt"
	"math"
)

// Coordinates - точка в градусах WGS84
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Finite проверяет, что обе координаты - конечные числа
func (c Coordinates) Finite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// Valid проверяет, что координаты конечны и лежат в допустимых диапазонах
func (c Coordinates) Valid() bool {
	return c.Finite() && c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// MapsURL - ссылка на точку в Google Maps
func (c Coordinates) MapsURL() string {
	return fmt.Sprintf("https://maps.google.com/?q=%g,%g", c.Lat, c.Lng)
}

// Place - результат геокодирования
type Place struct {
	DisplayName string      `json:"display_name"`
	Location    Coordinates `json:"location"`
}

// RouteStep - одна инструкция пошаговой навигации
type RouteStep struct {
	Instruction    string  `json:"instruction"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Route - результат построения маршрута
type Route struct {
	DistanceMeters  float64       `json:"distance_meters"`
	DurationSeconds float64       `json:"duration_seconds"`
	Steps           []RouteStep   `json:"steps"`
	Polyline        []Coordinates `json:"polyline"`
	TrafficAware    bool          `json:"traffic_aware"`
}

// Kilometers и Minutes используются в голосовых ответах
func (r *Route) Kilometers() float64 { return r.DistanceMeters / 1000 }
func (r *Route) Minutes() float64    { return r.DurationSeconds / 60 }

// Amenity - объект инфраструктуры рядом с пользователем (больница, полиция, АЗС...)
type Amenity struct {
	Name           string      `json:"name,omitempty"`
	Kind           string      `json:"kind"`
	Location       Coordinates `json:"location"`
	DistanceMeters float64     `json:"distance_meters"`
}

// Weather - текущая погода в точке
type Weather struct {
	TempC     float64  `json:"temp_c"`
	Condition string   `json:"condition"`
	Humidity  *float64 `json:"humidity,omitempty"`
	WindSpeed *float64 `json:"wind_speed,omitempty"`
}
