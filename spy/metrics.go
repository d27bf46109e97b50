package spy

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	// Metrics counts relayed traffic. A nil *Metrics is valid and records nothing.
	Metrics struct {
		Registry *prometheus.Registry

		packets        *prometheus.CounterVec
		bytes          *prometheus.CounterVec
		decodeFailures *prometheus.CounterVec
		sessions       prometheus.Gauge
	}
)

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		packets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jdwpspy",
			Name:      "packets_total",
			Help:      "Packets relayed, by direction and kind",
		}, []string{"direction", "kind"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jdwpspy",
			Name:      "bytes_total",
			Help:      "Bytes relayed, headers included",
		}, []string{"direction"}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jdwpspy",
			Name:      "decode_failures_total",
			Help:      "Packets whose payload could not be fully decoded",
		}, []string{"direction"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jdwpspy",
			Name:      "active_sessions",
			Help:      "Relays currently running",
		}),
	}
	m.Registry.MustRegister(m.packets, m.bytes, m.decodeFailures, m.sessions)
	return m
}

func direction(fromVM bool) string {
	if fromVM {
		return "vm_to_debugger"
	}
	return "debugger_to_vm"
}

func (m *Metrics) packet(p jdwp.Packet, fromVM bool) {
	if m == nil {
		return
	}
	kind := "command"
	if p.IsReply() {
		kind = "reply"
	}
	m.packets.WithLabelValues(direction(fromVM), kind).Inc()
	m.bytes.WithLabelValues(direction(fromVM)).Add(float64(p.Length()))
}

func (m *Metrics) decodeFailed(fromVM bool) {
	if m == nil {
		return
	}
	m.decodeFailures.WithLabelValues(direction(fromVM)).Inc()
}

func (m *Metrics) sessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) sessionEnded() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/liveness", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(struct {
			Now time.Time `json:"now"`
		}{Now: time.Now()})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return mux
}

// ServeMetrics exposes m on addr until ctx is done.
func ServeMetrics(ctx context.Context, addr string, m *Metrics) error {
	srv := http.Server{
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: time.Second * 10,
		MaxHeaderBytes:    1_000_000,
		Addr:              addr,
		Handler:           m.Handler(),
	}
	go func() {
		<-ctx.Done()
		timeout, cancel := context.WithTimeout(context.Background(), time.Minute)
		srv.Shutdown(timeout)
		cancel()
	}()
	slog.Info("Starting metrics server", "addr", srv.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
