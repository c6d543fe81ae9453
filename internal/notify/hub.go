package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Типы сообщений websocket
const (
	MessageChanged    = "changed"
	MessageSpeak      = "speak"
	MessageSiren      = "siren"
	MessageTranscript = "transcript"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientSendSize = 32
)

// Message - кадр, которым обмениваются сервер и браузер
type Message struct {
	Type   string       `json:"type"`
	Event  *ChangeEvent `json:"event,omitempty"`
	Text   string       `json:"text,omitempty"`
	Locale string       `json:"locale,omitempty"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub рассылает события изменений, речь и сирену подключенным браузерам
// и собирает от них распознанные транскрипты.
type Hub struct {
	mu          sync.RWMutex
	clients     map[uuid.UUID]*client
	upgrader    websocket.Upgrader
	transcripts chan string
	logger      *logrus.Logger
}

// NewHub создает Hub с очередью транскриптов заданного размера
func NewHub(logger *logrus.Logger, transcriptBuffer int) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		transcripts: make(chan string, transcriptBuffer),
		logger:      logger,
	}
}

// Transcripts - поток транскриптов, пришедших от браузеров
func (h *Hub) Transcripts() <-chan string {
	return h.transcripts
}

// ClientCount возвращает число подключенных браузеров
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS апгрейдит HTTP-соединение и регистрирует клиента
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, clientSendSize)}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.WithField("client_id", c.id).Debug("websocket client connected")

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.WithError(err).WithField("client_id", c.id).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil || msg.Type != MessageTranscript {
			continue
		}
		h.PushTranscript(msg.Text)
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PushTranscript кладет транскрипт в очередь; при переполнении транскрипт отбрасывается
func (h *Hub) PushTranscript(text string) {
	select {
	case h.transcripts <- text:
	default:
		h.logger.WithField("transcript", text).Warn("transcript queue full, dropping")
	}
}

// Broadcast отправляет сообщение всем клиентам; медленные клиенты пропускают кадр
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.WithError(err).Error("failed to marshal websocket message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.WithField("client_id", c.id).Warn("websocket client is slow, dropping message")
		}
	}
}

// NotifyChange пересылает событие изменения браузерам
func (h *Hub) NotifyChange(event ChangeEvent) {
	h.Broadcast(Message{Type: MessageChanged, Event: &event})
}

// Speak отправляет фразу на синтез речи в браузер
func (h *Hub) Speak(_ context.Context, text, locale string) {
	h.Broadcast(Message{Type: MessageSpeak, Text: text, Locale: locale})
}

// Siren просит браузеры проиграть сирену
func (h *Hub) Siren(_ context.Context) {
	h.Broadcast(Message{Type: MessageSiren})
}
