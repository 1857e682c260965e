package observability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benmeehan/camera-alarm-agent/internal/observability"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestObservability_NilIsNoop(t *testing.T) {
	var obs *observability.Observability

	assert.NotPanics(t, func() {
		obs.Detection("log_tail")
		obs.AlarmPublished()
		obs.AlarmFailed()
		obs.SignalReported(78)
		obs.SignalFailed()
		obs.SetConnected(true)
	})
}

func TestObservability_Metrics(t *testing.T) {
	obs := observability.New(zerolog.Nop())
	obs.Detection("capture_watch")
	obs.AlarmPublished()
	obs.SignalReported(78)
	obs.SetConnected(true)

	rec := httptest.NewRecorder()
	obs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `mqttalarm_detections_total{detector="capture_watch"} 1`)
	assert.Contains(t, body, "mqttalarm_alarms_published_total 1")
	assert.Contains(t, body, "mqttalarm_signal_rssi 78")
	assert.Contains(t, body, "mqttalarm_broker_connected 1")
}

func TestObservability_Healthz(t *testing.T) {
	obs := observability.New(zerolog.Nop())

	rec := httptest.NewRecorder()
	obs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
