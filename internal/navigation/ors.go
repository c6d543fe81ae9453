package navigation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
)

type orsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
			Segments []struct {
				Steps []struct {
					Distance    float64 `json:"distance"`
					Instruction string  `json:"instruction"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSClient - маршрутизатор OpenRouteService с учетом дорожной обстановки
type ORSClient struct {
	httpClient
	apiKey string
}

func NewORSClient(baseURL, apiKey, userAgent string, timeout time.Duration) *ORSClient {
	return &ORSClient{
		httpClient: newHTTPClient("openrouteservice", strings.TrimRight(baseURL, "/"), userAgent, timeout),
		apiKey:     apiKey,
	}
}

// Configured сообщает, задан ли ключ API
func (c *ORSClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *ORSClient) Route(ctx context.Context, src, dst models.Coordinates) (*models.Route, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("start", fmt.Sprintf("%g,%g", src.Lng, src.Lat))
	params.Set("end", fmt.Sprintf("%g,%g", dst.Lng, dst.Lat))

	var resp orsResponse
	if err := c.getJSON(ctx, c.baseURL+"/v2/directions/driving-car?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 {
		return nil, ErrNoRoute
	}

	f := resp.Features[0]
	route := &models.Route{
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
		Polyline:        toPolyline(f.Geometry.Coordinates),
		TrafficAware:    true,
	}
	for _, seg := range f.Properties.Segments {
		for _, s := range seg.Steps {
			route.Steps = append(route.Steps, models.RouteStep{
				Instruction:    s.Instruction,
				DistanceMeters: s.Distance,
			})
		}
	}
	return route, nil
}

// TrafficRouter выбирает ORS, если он настроен, иначе маршрутизатор по умолчанию
type TrafficRouter struct {
	traffic  *ORSClient
	fallback Router
}

func NewTrafficRouter(traffic *ORSClient, fallback Router) *TrafficRouter {
	return &TrafficRouter{traffic: traffic, fallback: fallback}
}

func (r *TrafficRouter) Route(ctx context.Context, src, dst models.Coordinates) (*models.Route, error) {
	if r.traffic.Configured() {
		return r.traffic.Route(ctx, src, dst)
	}
	return r.fallback.Route(ctx, src, dst)
}
