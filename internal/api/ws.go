package api

import (
	"net/http"
	"sync"

	"github.com/dossinstitute/eventquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type CompletionMessage struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// CompletionHub broadcasts quest completions to connected websocket clients.
// It implements service.CompletionNotifier; QuestCompleted never blocks the
// caller, a full queue drops the event.
type CompletionHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	events  chan CompletionMessage
	done    chan struct{}
}

func NewCompletionHub() *CompletionHub {
	h := &CompletionHub{
		clients: make(map[*websocket.Conn]struct{}),
		events:  make(chan CompletionMessage, 64),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *CompletionHub) QuestCompleted(questID int64, actor string) {
	msg := CompletionMessage{
		Type: "quest_completed",
		Payload: map[string]any{
			"quest_id": questID,
			"actor":    actor,
		},
	}

	select {
	case h.events <- msg:
	default:
		logger.Logger().Warn("completion event dropped",
			zap.Int64("quest_id", questID),
			zap.String("actor", actor))
	}
}

func (h *CompletionHub) run() {
	for {
		select {
		case msg := <-h.events:
			h.broadcast(msg)
		case <-h.done:
			return
		}
	}
}

func (h *CompletionHub) broadcast(msg CompletionMessage) {
	l := logger.Logger()

	data, err := json.Marshal(msg)
	if err != nil {
		l.Error("failed to marshal completion message", zap.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			l.Error("failed to send completion message", zap.Error(err))
			h.remove(conn)
		}
	}
}

func (h *CompletionHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *CompletionHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Close stops the broadcast loop and disconnects all clients.
func (h *CompletionHub) Close() {
	close(h.done)

	h.mu.Lock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()
}

func NewCompletionRoutes(handler *gin.RouterGroup, hub *CompletionHub) {
	h := handler.Group("/ws")

	h.GET("/completions", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Logger().Error("websocket upgrade failed", zap.Error(err))
			return
		}

		hub.add(conn)

		go func() {
			defer hub.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
						logger.Logger().Warn("websocket unexpected close", zap.Error(err))
					}
					return
				}
			}
		}()
	})
}
