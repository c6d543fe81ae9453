package navigation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNominatim_Search(t *testing.T) {
	// Подготовка
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "marina beach", r.URL.Query().Get("q"))
		assert.Equal(t, "jack-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `[
			{"display_name":"Marina Beach, Chennai","lat":"13.05","lon":"80.28"},
			{"display_name":"broken","lat":"x","lon":"80"}
		]`)
	})
	client := NewNominatimClient(srv.URL, "jack-test", time.Second, 0.05)

	// Действие
	places, err := client.Search(context.Background(), "marina beach", 5)

	// Проверки
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Marina Beach, Chennai", places[0].DisplayName)
	assert.Equal(t, models.Coordinates{Lat: 13.05, Lng: 80.28}, places[0].Location)
}

func TestNominatim_SearchNoResults(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	client := NewNominatimClient(srv.URL, "", time.Second, 0.05)

	_, err := client.Search(context.Background(), "nowhere", 1)

	assert.True(t, errors.Is(err, ErrPlaceNotFound))
}

func TestNominatim_NearestStation(t *testing.T) {
	// Подготовка
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "police", q.Get("amenity"))
		assert.Equal(t, "1", q.Get("bounded"))
		box := strings.Split(q.Get("viewbox"), ",")
		if !assert.Len(t, box, 4) {
			return
		}
		for i, want := range []float64{80.2, 13.1, 80.3, 13.0} {
			got, err := strconv.ParseFloat(box[i], 64)
			assert.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9)
		}
		fmt.Fprint(w, `[{"display_name":"Mylapore Police Station, Chennai, Tamil Nadu","lat":"13.03","lon":"80.27"}]`)
	})
	client := NewNominatimClient(srv.URL, "", time.Second, 0.05)

	// Действие
	name, err := client.NearestStation(context.Background(), models.Coordinates{Lat: 13.05, Lng: 80.25})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Mylapore Police Station", name)
}

func TestNominatim_NearestStationEmpty(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	client := NewNominatimClient(srv.URL, "", time.Second, 0.05)

	name, err := client.NearestStation(context.Background(), models.Coordinates{Lat: 1, Lng: 1})

	require.NoError(t, err)
	assert.Equal(t, UnknownStation, name)
}

func TestNominatim_NearestStationServerError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := NewNominatimClient(srv.URL, "", time.Second, 0.05)

	_, err := client.NearestStation(context.Background(), models.Coordinates{Lat: 1, Lng: 1})

	assert.Error(t, err)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Adyar Police Station", ShortName("Adyar Police Station, Chennai"))
	assert.Equal(t, "Solo", ShortName("  Solo  "))
	assert.Equal(t, UnknownStation, ShortName(""))
	assert.Equal(t, UnknownStation, ShortName(", Chennai"))
}

func TestOverpass_QueryAmenitiesSortedAndLimited(t *testing.T) {
	// Подготовка
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Contains(t, r.PostForm.Get("data"), `node["amenity"="hospital"](around:5000,13,80)`)
		fmt.Fprint(w, `{"elements":[
			{"lat":13.2,"lon":80.0,"tags":{"name":"Far"}},
			{"lat":13.01,"lon":80.0,"tags":{"name":"Near"}},
			{"lat":13.05,"lon":80.0,"tags":{}}
		]}`)
	})
	client := NewOverpassClient(srv.URL, "", time.Second, 2)

	// Действие
	amenities, err := client.QueryAmenities(context.Background(), "hospital", models.Coordinates{Lat: 13, Lng: 80}, 5000)

	// Проверки
	require.NoError(t, err)
	require.Len(t, amenities, 2)
	assert.Equal(t, "Near", amenities[0].Name)
	assert.Equal(t, "", amenities[1].Name)
	assert.InDelta(t, 1112, amenities[0].DistanceMeters, 5)
	assert.Less(t, amenities[0].DistanceMeters, amenities[1].DistanceMeters)
	assert.Equal(t, "hospital", amenities[0].Kind)
}

func TestOverpass_QueryUsesCategoryTag(t *testing.T) {
	q := Query("hotel", models.Coordinates{Lat: 1, Lng: 2}, 300)

	assert.Equal(t, `[out:json];(node["tourism"="hotel"](around:300,1,2););out center;`, q)
}

func TestOverpass_InvalidCenter(t *testing.T) {
	client := NewOverpassClient("http://unused", "", time.Second, 5)

	_, err := client.QueryAmenities(context.Background(), "fuel", models.Coordinates{Lat: 100, Lng: 0}, 100)

	assert.True(t, errors.Is(err, ErrLocationUnavailable))
}

func TestOSRM_Route(t *testing.T) {
	// Подготовка
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/80.2,13;80.3,13.1", r.URL.Path)
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":12500,"duration":1800,
			"geometry":{"coordinates":[[80.2,13],[80.3,13.1]]},
			"legs":[{"steps":[{"distance":500,"name":"Anna Salai","maneuver":{"type":"turn","modifier":"left"}}]}]}]}`)
	})
	client := NewOSRMClient(srv.URL, "", time.Second)

	// Действие
	route, err := client.Route(context.Background(), models.Coordinates{Lat: 13, Lng: 80.2}, models.Coordinates{Lat: 13.1, Lng: 80.3})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 12.5, route.Kilometers())
	assert.Equal(t, 30.0, route.Minutes())
	assert.False(t, route.TrafficAware)
	require.Len(t, route.Steps, 1)
	assert.Equal(t, "turn left onto Anna Salai", route.Steps[0].Instruction)
	assert.Equal(t, []models.Coordinates{{Lat: 13, Lng: 80.2}, {Lat: 13.1, Lng: 80.3}}, route.Polyline)
}

func TestOSRM_NoRoute(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"NoRoute","routes":[]}`)
	})
	client := NewOSRMClient(srv.URL, "", time.Second)

	_, err := client.Route(context.Background(), models.Coordinates{}, models.Coordinates{Lat: 1, Lng: 1})

	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestTrafficRouter(t *testing.T) {
	ors := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[[80.2,13]]},
			"properties":{"summary":{"distance":1000,"duration":120},
			"segments":[{"steps":[{"distance":1000,"instruction":"Head north"}]}]}}]}`)
	})
	osrm := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":2000,"duration":300,"geometry":{"coordinates":[]},"legs":[]}]}`)
	})
	src, dst := models.Coordinates{Lat: 13, Lng: 80.2}, models.Coordinates{Lat: 13.1, Lng: 80.3}

	t.Run("ключ задан", func(t *testing.T) {
		router := NewTrafficRouter(NewORSClient(ors.URL, "secret", "", time.Second), NewOSRMClient(osrm.URL, "", time.Second))

		route, err := router.Route(context.Background(), src, dst)

		require.NoError(t, err)
		assert.True(t, route.TrafficAware)
		assert.Equal(t, 1000.0, route.DistanceMeters)
		assert.Equal(t, "Head north", route.Steps[0].Instruction)
	})

	t.Run("без ключа", func(t *testing.T) {
		router := NewTrafficRouter(NewORSClient(ors.URL, "", "", time.Second), NewOSRMClient(osrm.URL, "", time.Second))

		route, err := router.Route(context.Background(), src, dst)

		require.NoError(t, err)
		assert.False(t, route.TrafficAware)
		assert.Equal(t, 2000.0, route.DistanceMeters)
	})
}

func TestOpenMeteo_CurrentWeather(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		fmt.Fprint(w, `{"current":{"temperature_2m":31.5,"relative_humidity_2m":70,"weather_code":63}}`)
	})
	client := NewOpenMeteoClient(srv.URL, "", time.Second)

	weather, err := client.CurrentWeather(context.Background(), models.Coordinates{Lat: 13, Lng: 80})

	require.NoError(t, err)
	assert.Equal(t, 31.5, weather.TempC)
	assert.Equal(t, "Rain", weather.Condition)
	require.NotNil(t, weather.Humidity)
	assert.Equal(t, 70.0, *weather.Humidity)
	assert.Nil(t, weather.WindSpeed)
}

func TestWeatherCondition(t *testing.T) {
	tests := map[int]string{
		0: "Clear sky", 2: "Partly cloudy", 45: "Fog", 53: "Drizzle",
		81: "Rain", 73: "Snow", 86: "Snow", 95: "Thunderstorm", 20: "Unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, WeatherCondition(code), "code %d", code)
	}
}
