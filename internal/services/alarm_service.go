package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/constants"
	"github.com/benmeehan/camera-alarm-agent/internal/detectors"
	"github.com/benmeehan/camera-alarm-agent/internal/observability"
	"github.com/benmeehan/camera-alarm-agent/internal/utils"
	"github.com/rs/zerolog"
)

// BrokerSession is the broker connection driven by the AlarmService.
type BrokerSession interface {
	RegisterLastWill(topic, offlinePayload string) error
	OnConnected(callback func(error))
	Connect(ctx context.Context) error
	Poll(ctx context.Context, timeout time.Duration) error
	Publish(topic string, payload []byte, retained bool) error
	Close()
}

// AlarmService runs the detection and publish loop. Everything it owns is
// touched only from the goroutine calling Run.
type AlarmService struct {
	cfg      *utils.Config
	session  BrokerSession
	detector detectors.Detector
	sampler  SignalSource // nil when signal reporting is disabled
	timer    utils.Timer
	clock    utils.Clock
	obs      *observability.Observability
	logger   zerolog.Logger
}

// NewAlarmService wires the loop. sampler and obs may be nil.
func NewAlarmService(
	cfg *utils.Config,
	session BrokerSession,
	detector detectors.Detector,
	sampler SignalSource,
	timer utils.Timer,
	clock utils.Clock,
	obs *observability.Observability,
	logger zerolog.Logger,
) *AlarmService {
	return &AlarmService{
		cfg:      cfg,
		session:  session,
		detector: detector,
		sampler:  sampler,
		timer:    timer,
		clock:    clock,
		obs:      obs,
		logger:   logger,
	}
}

// Run connects to the broker and cycles until a fatal error occurs or ctx is
// cancelled. Cancellation is a clean stop and returns nil.
func (a *AlarmService) Run(ctx context.Context) error {
	if a.cfg.LWTEnabled() {
		if err := a.session.RegisterLastWill(a.cfg.LWT.Topic, a.cfg.LWT.Offline); err != nil {
			a.logger.Error().Err(err).Msg("Unable to set LWT")
		}
	}

	a.session.OnConnected(a.handleConnected)

	if err := a.session.Connect(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	a.obs.SetConnected(true)
	defer a.obs.SetConnected(false)
	defer a.timer.Stop()

	a.logger.Info().
		Str("detector", a.detector.Name()).
		Str("alarm_topic", a.cfg.Alarm.Topic).
		Msg("Watching for motion")

	for {
		err := a.RunCycle(ctx)
		if err == nil {
			continue
		}
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			a.logger.Info().Msg("Alarm loop stopping gracefully")
			return nil
		}
		return err
	}
}

// RunCycle performs one iteration: broker I/O, a due signal report, then one
// detection poll.
func (a *AlarmService) RunCycle(ctx context.Context) error {
	start := a.clock.Now()

	if err := a.session.Poll(ctx, constants.PollTimeout); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrBrokerIO, err)
	}

	if a.sampler != nil && a.timer.Fired() {
		a.reportSignal()
		a.timer.Arm(a.cfg.Wifi.Interval)
	}

	result := a.detector.Poll(ctx)
	if result.Detected {
		a.obs.Detection(result.Source)
		a.logger.Debug().Str("detector", result.Source).Msg("Motion detected")

		if err := a.session.Publish(a.cfg.Alarm.Topic, []byte(a.cfg.Alarm.Message), false); err != nil {
			a.obs.AlarmFailed()
			return fmt.Errorf("%w: %w", ErrAlarmPublish, err)
		}
		a.obs.AlarmPublished()
		a.logger.Info().Str("topic", a.cfg.Alarm.Topic).Msg("Alarm published")

		if cooldown := a.detector.Cooldown(); cooldown > 0 {
			a.logger.Debug().Dur("cooldown", cooldown).Msg("Suppressing detection")
			return a.clock.Sleep(ctx, cooldown)
		}
	}

	elapsed := a.clock.Now().Sub(start)
	return a.clock.Sleep(ctx, constants.CycleInterval-elapsed)
}

// handleConnected runs on the loop goroutine once the broker acknowledged the
// connection.
func (a *AlarmService) handleConnected(err error) {
	if err != nil {
		a.logger.Error().Err(err).Msg("Connect failed")
		return
	}

	if a.cfg.LWTEnabled() {
		if err := a.session.Publish(a.cfg.LWT.Topic, []byte(a.cfg.LWT.Online), true); err != nil {
			a.logger.Error().Err(err).Msg("Unable to publish LWT message")
		}
	}

	if a.sampler != nil {
		a.reportSignal()
		a.timer.Arm(a.cfg.Wifi.Interval)
	}
}

// reportSignal samples and publishes the signal strength. Failures are logged.
func (a *AlarmService) reportSignal() {
	sample, err := a.sampler.Sample()
	if errors.Is(err, ErrNotApplicable) {
		a.logger.Debug().Msg("No dBm signal level available")
		return
	}
	if err != nil {
		a.obs.SignalFailed()
		a.logger.Error().Err(err).Msg("Unable to sample WiFi strength")
		return
	}

	if err := a.session.Publish(a.cfg.Wifi.Topic, []byte(sample.Payload()), false); err != nil {
		a.obs.SignalFailed()
		a.logger.Error().Err(err).Msg("Unable to publish WiFi strength message")
		return
	}
	a.obs.SignalReported(sample.RSSI)
	a.logger.Debug().Str("payload", sample.Payload()).Msg("WiFi strength published")
}
