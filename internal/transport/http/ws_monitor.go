package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-event-service/internal/app"
	"quiz-event-service/internal/domain"
)

// MonitorHandler streams aggregate-stats snapshots to organizer dashboards
// over a websocket. A fresh snapshot is pushed immediately on connect and
// again after every finalized attempt.
type MonitorHandler struct {
	service  *app.QuizService
	monitor  *app.Monitor
	upgrader websocket.Upgrader
}

func NewMonitorHandler(service *app.QuizService, monitor *app.Monitor) *MonitorHandler {
	return &MonitorHandler{
		service: service,
		monitor: monitor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type monitorMessage struct {
	Type    string                `json:"type"`
	Payload domain.AggregateStats `json:"payload"`
}

func (h *MonitorHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.monitor.Subscribe()
	defer cancel()

	initial, err := h.service.Stats(r.Context())
	if err == nil {
		if err := conn.WriteJSON(monitorMessage{Type: "stats", Payload: initial}); err != nil {
			return
		}
	}

	done := make(chan struct{})

	// Reader goroutine: the monitor feed is one-way, but reading is what
	// notices the peer going away.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case stats, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(monitorMessage{Type: "stats", Payload: stats}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
