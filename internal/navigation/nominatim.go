package navigation

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
)

// UnknownStation подставляется, когда участок рядом не найден
const UnknownStation = "Unknown Police Station"

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimClient - геокодер OpenStreetMap
type NominatimClient struct {
	httpClient
	searchDelta float64
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, searchDelta float64) *NominatimClient {
	return &NominatimClient{
		httpClient:  newHTTPClient("nominatim", strings.TrimRight(baseURL, "/"), userAgent, timeout),
		searchDelta: searchDelta,
	}
}

// Search геокодирует произвольный текст; записи с битыми координатами пропускаются
func (c *NominatimClient) Search(ctx context.Context, text string, limit int) ([]models.Place, error) {
	if limit <= 0 {
		limit = 1
	}
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", text)
	params.Set("limit", strconv.Itoa(limit))

	var results []nominatimResult
	if err := c.getJSON(ctx, c.baseURL+"/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(results))
	for _, r := range results {
		lat, errLat := parseCoord(r.Lat)
		lon, errLon := parseCoord(r.Lon)
		if errLat != nil || errLon != nil {
			continue
		}
		places = append(places, models.Place{
			DisplayName: r.DisplayName,
			Location:    models.Coordinates{Lat: lat, Lng: lon},
		})
	}
	if len(places) == 0 {
		return nil, ErrPlaceNotFound
	}
	return places, nil
}

// NearestStation ищет полицейский участок в квадрате ±searchDelta градусов вокруг точки
// и возвращает короткое имя (до первой запятой)
func (c *NominatimClient) NearestStation(ctx context.Context, location models.Coordinates) (string, error) {
	d := c.searchDelta
	if d <= 0 {
		d = 0.05
	}
	params := url.Values{}
	params.Set("format", "json")
	params.Set("amenity", "police")
	params.Set("limit", "1")
	params.Set("bounded", "1")
	params.Set("viewbox", fmt.Sprintf("%g,%g,%g,%g",
		location.Lng-d, location.Lat+d, location.Lng+d, location.Lat-d))

	var results []nominatimResult
	if err := c.getJSON(ctx, c.baseURL+"/search?"+params.Encode(), &results); err != nil {
		return "", err
	}
	if len(results) == 0 {
		return UnknownStation, nil
	}
	return ShortName(results[0].DisplayName), nil
}

// ShortName обрезает полное имя по первой запятой
func ShortName(displayName string) string {
	name := displayName
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownStation
	}
	return name
}
