package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

// dialHub поднимает сервер с хабом и подключает к нему одного клиента
func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestHub_BroadcastsToClients(t *testing.T) {
	// Подготовка
	hub := NewHub(newTestLogger(), 4)
	conn := dialHub(t, hub)

	// Действие
	hub.Speak(context.Background(), "Navigation stopped", "ta-IN")
	hub.NotifyChange(ChangeEvent{Kind: KindCreated, IncidentID: 7})
	hub.Siren(context.Background())

	// Проверки
	speak := readMessage(t, conn)
	assert.Equal(t, MessageSpeak, speak.Type)
	assert.Equal(t, "Navigation stopped", speak.Text)
	assert.Equal(t, "ta-IN", speak.Locale)

	changed := readMessage(t, conn)
	assert.Equal(t, MessageChanged, changed.Type)
	require.NotNil(t, changed.Event)
	assert.Equal(t, KindCreated, changed.Event.Kind)
	assert.Equal(t, int64(7), changed.Event.IncidentID)

	assert.Equal(t, MessageSiren, readMessage(t, conn).Type)
}

func TestHub_CollectsTranscripts(t *testing.T) {
	hub := NewHub(newTestLogger(), 4)
	conn := dialHub(t, hub)

	require.NoError(t, conn.WriteJSON(Message{Type: MessageSpeak, Text: "ignored"}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(Message{Type: MessageTranscript, Text: "jack stop navigation"}))

	select {
	case text := <-hub.Transcripts():
		assert.Equal(t, "jack stop navigation", text)
	case <-time.After(2 * time.Second):
		t.Fatal("transcript was not delivered")
	}
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub(newTestLogger(), 1)
	conn := dialHub(t, hub)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PushTranscriptDropsWhenFull(t *testing.T) {
	hub := NewHub(newTestLogger(), 1)

	hub.PushTranscript("first")
	hub.PushTranscript("second")

	assert.Equal(t, "first", <-hub.Transcripts())
	select {
	case text := <-hub.Transcripts():
		t.Fatalf("unexpected transcript %q", text)
	default:
	}
}
