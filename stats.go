package mochizuki

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry is the Prometheus registry holding every collector this
// package exports. The admin surface serves it at /metrics.
var MetricsRegistry = prometheus.NewRegistry()

var (
	activeConnections = promauto.With(MetricsRegistry).NewGauge(prometheus.GaugeOpts{
		Name: "mochizuki_active_connections",
		Help: "Number of currently open client connections",
	})

	messagesReceived = promauto.With(MetricsRegistry).NewCounter(prometheus.CounterOpts{
		Name: "mochizuki_messages_received_total",
		Help: "Total number of protocol lines received from clients",
	})

	messagesSent = promauto.With(MetricsRegistry).NewCounter(prometheus.CounterOpts{
		Name: "mochizuki_messages_sent_total",
		Help: "Total number of protocol lines sent to clients",
	})

	registrationTimeouts = promauto.With(MetricsRegistry).NewCounter(prometheus.CounterOpts{
		Name: "mochizuki_registration_timeouts_total",
		Help: "Connections closed for not completing registration in time",
	})

	pingTimeouts = promauto.With(MetricsRegistry).NewCounter(prometheus.CounterOpts{
		Name: "mochizuki_ping_timeouts_total",
		Help: "Connections closed for not answering a keepalive PING in time",
	})
)

// ServerStats holds real-time server statistics.
type ServerStats struct {
	sync.RWMutex
	StartTime        time.Time
	ConnectionCount  int
	MaxConnections   int
	MessagesSent     int64
	MessagesReceived int64
}

// StatsSnapshot is a point-in-time copy of the server counters.
type StatsSnapshot struct {
	Uptime           time.Duration `json:"uptime"`
	Connections      int           `json:"connections"`
	MaxConnections   int           `json:"max_connections"`
	MessagesSent     int64         `json:"messages_sent"`
	MessagesReceived int64         `json:"messages_received"`
}

func (st *ServerStats) connOpened() {
	st.Lock()
	st.ConnectionCount++
	if st.ConnectionCount > st.MaxConnections {
		st.MaxConnections = st.ConnectionCount
	}
	st.Unlock()
	activeConnections.Inc()
}

func (st *ServerStats) connClosed() {
	st.Lock()
	st.ConnectionCount--
	st.Unlock()
	activeConnections.Dec()
}

func (st *ServerStats) addSent() {
	st.Lock()
	st.MessagesSent++
	st.Unlock()
	messagesSent.Inc()
}

func (st *ServerStats) addReceived() {
	st.Lock()
	st.MessagesReceived++
	st.Unlock()
	messagesReceived.Inc()
}

// Snapshot returns a copy of the counters.
func (st *ServerStats) Snapshot() StatsSnapshot {
	st.RLock()
	defer st.RUnlock()
	return StatsSnapshot{
		Uptime:           time.Since(st.StartTime),
		Connections:      st.ConnectionCount,
		MaxConnections:   st.MaxConnections,
		MessagesSent:     st.MessagesSent,
		MessagesReceived: st.MessagesReceived,
	}
}
