package app

import (
	"sync"

	"quiz-event-service/internal/domain"
)

// Monitor fans out aggregate-stats snapshots to subscribed observers
// (the organizer dashboard). Slow subscribers never block a publish;
// a stale snapshot is dropped in favor of the newest one.
type Monitor struct {
	mu          sync.Mutex
	subscribers map[chan domain.AggregateStats]struct{}
}

func NewMonitor() *Monitor {
	return &Monitor{subscribers: make(map[chan domain.AggregateStats]struct{})}
}

// Subscribe returns a channel of stats snapshots. The caller must invoke the
// returned cancel function to avoid leaks.
func (m *Monitor) Subscribe() (<-chan domain.AggregateStats, func()) {
	ch := make(chan domain.AggregateStats, 8)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subscribers[ch]; ok {
			delete(m.subscribers, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber.
func (m *Monitor) Publish(stats domain.AggregateStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subscribers {
		select {
		case ch <- stats:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- stats
		}
	}
}
