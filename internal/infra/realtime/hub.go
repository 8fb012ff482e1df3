package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Подписчики (админ-панель, сетка слотов) могут приходить с любого origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fire-and-forget рассылка событий WebSocket подписчикам.
// Нет гарантий доставки и персистентности: пропущенное событие допустимо,
// клиент всегда может перечитать авторитетное состояние через API.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mu         sync.RWMutex
	logger     Logger
}

// NewHub создает новый hub подписчиков
func NewHub(logger Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

// Run основной цикл hub; запускается в отдельной горутине
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("realtime: client connected, total=%d", total)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("realtime: client disconnected, total=%d", total)

		case message := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Warn("realtime: failed to write to client, dropping: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Emit публикует событие всем подключенным подписчикам.
// Не блокирует: при переполненном канале событие отбрасывается.
func (h *Hub) Emit(event string, payload interface{}) {
	message, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("realtime: failed to marshal event %s: %v", event, err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("realtime: broadcast channel full, dropping event %s", event)
	}
}

// HandleWS обработчик HTTP endpoint'а GET /ws: апгрейд соединения и
// регистрация подписчика
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("realtime: websocket upgrade failed: %v", err)
		return
	}

	h.register <- conn

	// Читаем соединение только ради обнаружения разрыва
	go func() {
		defer func() {
			h.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Warn("realtime: websocket read error: %v", err)
				}
				return
			}
		}
	}()
}
