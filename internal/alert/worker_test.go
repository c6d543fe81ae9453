package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) (*Worker, *[]time.Duration) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	w := NewWorker(nil, logger, cfg)
	var sleeps []time.Duration
	w.sleep = func(_ context.Context, d time.Duration) { sleeps = append(sleeps, d) }
	return w, &sleeps
}

func testAlert() SOSAlert {
	return SOSAlert{
		IncidentID: 42,
		Latitude:   13.0827,
		Longitude:  80.2707,
		Message:    "I need help",
		MapsURL:    "https://maps.google.com/?q=13.0827,80.2707",
		Timestamp:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWorker_DeliverSignsPayload(t *testing.T) {
	// Подготовка
	type request struct {
		signature string
		body      []byte
	}
	received := make(chan request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- request{signature: r.Header.Get(SignatureHeader), body: body}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker, sleeps := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookSecret:     "secret",
		WebhookMaxRetries: 3,
		WebhookTimeout:    time.Second,
	})

	// Действие
	err := worker.Deliver(context.Background(), testAlert())

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, *sleeps)
	got := <-received
	assert.Equal(t, generateHMACSHA256(got.body, "secret"), got.signature)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.body, &body))
	assert.Equal(t, float64(42), body["incident_id"])
	assert.Equal(t, testAlert().Text(), body["text"])
}

func TestWorker_DeliverRetriesWithBackoff(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	worker, sleeps := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookMaxRetries: 4,
		WebhookBaseDelay:  100 * time.Millisecond,
		WebhookTimeout:    time.Second,
	})

	err := worker.Deliver(context.Background(), testAlert())

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *sleeps)
}

func TestWorker_DeliverGivesUp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	worker, _ := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookMaxRetries: 2,
		WebhookTimeout:    time.Second,
	})

	err := worker.Deliver(context.Background(), testAlert())

	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestWorker_DeliverWithoutURL(t *testing.T) {
	worker, _ := newTestWorker(&config.Config{})

	assert.NoError(t, worker.Deliver(context.Background(), testAlert()))
}

func TestWorker_DeliverCanceled(t *testing.T) {
	worker, _ := newTestWorker(&config.Config{WebhookURL: "http://127.0.0.1:1", WebhookMaxRetries: 3})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := worker.Deliver(ctx, testAlert())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSOSAlert_Text(t *testing.T) {
	assert.Equal(t,
		"SOS ALERT\nI need help\nLocation: https://maps.google.com/?q=13.0827,80.2707",
		testAlert().Text())
}
