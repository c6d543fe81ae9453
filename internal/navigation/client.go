// Package navigation содержит HTTP-клиенты внешних гео-сервисов:
// геокодер, поиск объектов, маршрутизация и погода.
package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shenikar/jack_navigator/internal/metrics"
)

var (
	// ErrPlaceNotFound - геокодер не нашел ни одного совпадения
	ErrPlaceNotFound = errors.New("place not found")
	// ErrNoRoute - сервис маршрутизации не вернул ни одного маршрута
	ErrNoRoute = errors.New("no route found")
	// ErrLocationUnavailable - текущая позиция пользователя еще неизвестна
	ErrLocationUnavailable = errors.New("location unavailable")
)

// httpClient - общая часть всех клиентов: базовый URL, User-Agent и имя для метрик
type httpClient struct {
	baseURL    string
	userAgent  string
	name       string
	httpClient *http.Client
}

func newHTTPClient(name, baseURL, userAgent string, timeout time.Duration) httpClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		name:       name,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do выполняет запрос и декодирует JSON-ответ в out
func (c *httpClient) do(req *http.Request, out interface{}) error {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ExternalFailures.WithLabelValues(c.name).Inc()
		return fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ExternalFailures.WithLabelValues(c.name).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", c.name, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ExternalFailures.WithLabelValues(c.name).Inc()
		return fmt.Errorf("decode %s response: %w", c.name, err)
	}
	return nil
}

func (c *httpClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// parseCoord разбирает координату, которую Nominatim отдает строкой
func parseCoord(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
