package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quiz-event-service/internal/domain"
)

func TestMonitorStreamsStatsSnapshots(t *testing.T) {
	router, monitor := newTestRouter(t)

	server := httptest.NewServer(router)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/monitor"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives on connect.
	typ, stats := readStats(t, conn)
	if typ != "stats" || stats.TotalUsers != 0 {
		t.Fatalf("unexpected initial snapshot %s %+v", typ, stats)
	}

	// A finalized attempt pushes a fresh snapshot.
	monitor.Publish(domain.AggregateStats{TotalUsers: 1, AverageScore: 4, AveragePercent: 66.7})

	typ, stats = readStats(t, conn)
	if typ != "stats" || stats.TotalUsers != 1 || stats.AveragePercent != 66.7 {
		t.Fatalf("unexpected pushed snapshot %s %+v", typ, stats)
	}
}

func readStats(t *testing.T, conn *websocket.Conn) (string, domain.AggregateStats) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type    string                `json:"type"`
		Payload domain.AggregateStats `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return msg.Type, msg.Payload
}
