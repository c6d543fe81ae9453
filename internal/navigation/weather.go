package navigation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
)

type openMeteoResponse struct {
	Current struct {
		Temperature float64  `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
		WeatherCode int      `json:"weather_code"`
	} `json:"current"`
}

// OpenMeteoClient получает текущую погоду
type OpenMeteoClient struct {
	httpClient
}

func NewOpenMeteoClient(baseURL, userAgent string, timeout time.Duration) *OpenMeteoClient {
	return &OpenMeteoClient{
		httpClient: newHTTPClient("open-meteo", strings.TrimRight(baseURL, "/"), userAgent, timeout),
	}
}

func (c *OpenMeteoClient) CurrentWeather(ctx context.Context, location models.Coordinates) (*models.Weather, error) {
	if !location.Valid() {
		return nil, ErrLocationUnavailable
	}
	endpoint := fmt.Sprintf("%s/v1/forecast?latitude=%g&longitude=%g&current=temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code",
		c.baseURL, location.Lat, location.Lng)

	var resp openMeteoResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &models.Weather{
		TempC:     resp.Current.Temperature,
		Condition: WeatherCondition(resp.Current.WeatherCode),
		Humidity:  resp.Current.Humidity,
		WindSpeed: resp.Current.WindSpeed,
	}, nil
}

// WeatherCondition переводит код WMO в текст
func WeatherCondition(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67, code >= 80 && code <= 82:
		return "Rain"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return "Snow"
	case code >= 95:
		return "Thunderstorm"
	}
	return "Unknown"
}
