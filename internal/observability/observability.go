package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Observability holds the agent's Prometheus collectors. A nil *Observability
// is valid and records nothing.
type Observability struct {
	registry *prometheus.Registry
	logger   zerolog.Logger

	detections      *prometheus.CounterVec
	alarmsPublished prometheus.Counter
	alarmFailures   prometheus.Counter
	signalReports   prometheus.Counter
	signalFailures  prometheus.Counter
	signalRSSI      prometheus.Gauge
	connected       prometheus.Gauge
}

// New creates the collectors on a private registry.
func New(logger zerolog.Logger) *Observability {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Observability{
		registry: reg,
		logger:   logger,
		detections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mqttalarm_detections_total",
			Help: "Number of motion detections by detector",
		}, []string{"detector"}),
		alarmsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqttalarm_alarms_published_total",
			Help: "Number of alarm messages published",
		}),
		alarmFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqttalarm_alarm_publish_failures_total",
			Help: "Number of alarm messages that failed to publish",
		}),
		signalReports: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqttalarm_signal_reports_total",
			Help: "Number of WiFi signal reports published",
		}),
		signalFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "mqttalarm_signal_report_failures_total",
			Help: "Number of WiFi signal reports that could not be sampled or published",
		}),
		signalRSSI: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mqttalarm_signal_rssi",
			Help: "Last reported WiFi RSSI estimate",
		}),
		connected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mqttalarm_broker_connected",
			Help: "1 while the broker session is connected",
		}),
	}
}

func (o *Observability) Detection(detector string) {
	if o == nil {
		return
	}
	o.detections.WithLabelValues(detector).Inc()
}

func (o *Observability) AlarmPublished() {
	if o == nil {
		return
	}
	o.alarmsPublished.Inc()
}

func (o *Observability) AlarmFailed() {
	if o == nil {
		return
	}
	o.alarmFailures.Inc()
}

func (o *Observability) SignalReported(rssi int) {
	if o == nil {
		return
	}
	o.signalReports.Inc()
	o.signalRSSI.Set(float64(rssi))
}

func (o *Observability) SignalFailed() {
	if o == nil {
		return
	}
	o.signalFailures.Inc()
}

func (o *Observability) SetConnected(connected bool) {
	if o == nil {
		return
	}
	if connected {
		o.connected.Set(1)
	} else {
		o.connected.Set(0)
	}
}

// Handler returns the router serving /metrics and /healthz.
func (o *Observability) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/healthz", HealthzHandler)
	return router
}

// Serve runs the HTTP endpoint on addr until ctx is cancelled.
func (o *Observability) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           o.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	o.logger.Info().Str("addr", addr).Msg("Observability endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
