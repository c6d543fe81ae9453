package navigation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
)

// Router строит маршрут между двумя точками
type Router interface {
	Route(ctx context.Context, src, dst models.Coordinates) (*models.Route, error)
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Steps []struct {
				Distance float64 `json:"distance"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// OSRMClient - маршрутизатор по умолчанию, без учета пробок
type OSRMClient struct {
	httpClient
}

func NewOSRMClient(baseURL, userAgent string, timeout time.Duration) *OSRMClient {
	return &OSRMClient{
		httpClient: newHTTPClient("osrm", strings.TrimRight(baseURL, "/"), userAgent, timeout),
	}
}

func (c *OSRMClient) Route(ctx context.Context, src, dst models.Coordinates) (*models.Route, error) {
	endpoint := fmt.Sprintf("%s/route/v1/driving/%g,%g;%g,%g?overview=full&geometries=geojson&steps=true",
		c.baseURL, src.Lng, src.Lat, dst.Lng, dst.Lat)

	var resp osrmResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return nil, ErrNoRoute
	}

	r := resp.Routes[0]
	route := &models.Route{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Polyline:        toPolyline(r.Geometry.Coordinates),
	}
	for _, leg := range r.Legs {
		for _, s := range leg.Steps {
			route.Steps = append(route.Steps, models.RouteStep{
				Instruction:    osrmInstruction(s.Maneuver.Type, s.Maneuver.Modifier, s.Name),
				DistanceMeters: s.Distance,
			})
		}
	}
	return route, nil
}

func osrmInstruction(maneuver, modifier, street string) string {
	parts := []string{maneuver}
	if modifier != "" {
		parts = append(parts, modifier)
	}
	text := strings.Join(parts, " ")
	if street != "" {
		text += " onto " + street
	}
	return text
}

// toPolyline переводит пары GeoJSON [lng, lat] в координаты
func toPolyline(coords [][]float64) []models.Coordinates {
	line := make([]models.Coordinates, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		line = append(line, models.Coordinates{Lat: c[1], Lng: c[0]})
	}
	return line
}
