package services

import (
	"fmt"

	"github.com/benmeehan/camera-alarm-agent/internal/models"
	"github.com/benmeehan/camera-alarm-agent/pkg/wireless"
	"github.com/rs/zerolog"
)

// SignalSource produces a signal strength sample on demand.
type SignalSource interface {
	Sample() (models.RssiSample, error)
}

// SignalSampler reads the radio statistics of one wireless interface.
type SignalSampler struct {
	iface  string
	stats  wireless.StatsProvider
	logger zerolog.Logger
}

// NewSignalSampler creates a SignalSampler for iface.
func NewSignalSampler(iface string, stats wireless.StatsProvider, logger zerolog.Logger) *SignalSampler {
	return &SignalSampler{
		iface:  iface,
		stats:  stats,
		logger: logger,
	}
}

// Sample queries the interface afresh. It returns ErrInvalidInterface when the
// query fails and ErrNotApplicable when the level is not dBm-denominated.
func (s *SignalSampler) Sample() (models.RssiSample, error) {
	stats, err := s.stats.Query(s.iface)
	if err != nil {
		return models.RssiSample{}, fmt.Errorf("%w: %s: %w", ErrInvalidInterface, s.iface, err)
	}

	if !stats.IsDBm() {
		return models.RssiSample{}, ErrNotApplicable
	}

	sample := models.RssiSample{
		Interface: s.iface,
		Level:     stats.Level,
		RSSI:      EstimateRSSI(stats.Level),
	}
	s.logger.Debug().Str("interface", s.iface).Int("rssi", sample.RSSI).Msg("Signal strength sampled")
	return sample, nil
}

// EstimateRSSI maps a 0-255 quality level onto 0-100 as round(level/2.56),
// rounding halves up.
func EstimateRSSI(level uint8) int {
	return (int(level)*100 + 128) / 256
}
