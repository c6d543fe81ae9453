package navigation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	"github.com/shenikar/jack_navigator/internal/models"
)

const earthRadiusMeters = 6371008.8

// ключ тега OSM для категорий, которые не являются amenity
var categoryTags = map[string]string{
	"hotel":       "tourism",
	"park":        "leisure",
	"supermarket": "shop",
}

type overpassResponse struct {
	Elements []struct {
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// OverpassClient ищет объекты инфраструктуры вокруг точки
type OverpassClient struct {
	httpClient
	limit int
}

func NewOverpassClient(baseURL, userAgent string, timeout time.Duration, limit int) *OverpassClient {
	return &OverpassClient{
		httpClient: newHTTPClient("overpass", baseURL, userAgent, timeout),
		limit:      limit,
	}
}

// Query строит запрос Overpass QL для категории
func Query(kind string, center models.Coordinates, radiusMeters int) string {
	tag, ok := categoryTags[kind]
	if !ok {
		tag = "amenity"
	}
	return fmt.Sprintf(`[out:json];(node["%s"="%s"](around:%d,%g,%g););out center;`,
		tag, kind, radiusMeters, center.Lat, center.Lng)
}

// QueryAmenities возвращает объекты вида kind, отсортированные по расстоянию от center
func (c *OverpassClient) QueryAmenities(ctx context.Context, kind string, center models.Coordinates, radiusMeters int) ([]models.Amenity, error) {
	if !center.Valid() {
		return nil, ErrLocationUnavailable
	}
	form := url.Values{}
	form.Set("data", Query(kind, center, radiusMeters))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp overpassResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	origin := s2.LatLngFromDegrees(center.Lat, center.Lng)
	amenities := make([]models.Amenity, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		lat, lon := el.Lat, el.Lon
		if el.Center != nil {
			lat, lon = el.Center.Lat, el.Center.Lon
		}
		point := s2.LatLngFromDegrees(lat, lon)
		amenities = append(amenities, models.Amenity{
			Name:           el.Tags["name"],
			Kind:           kind,
			Location:       models.Coordinates{Lat: lat, Lng: lon},
			DistanceMeters: origin.Distance(point).Radians() * earthRadiusMeters,
		})
	}

	sort.SliceStable(amenities, func(i, j int) bool {
		return amenities[i].DistanceMeters < amenities[j].DistanceMeters
	})
	if c.limit > 0 && len(amenities) > c.limit {
		amenities = amenities[:c.limit]
	}
	return amenities, nil
}
