package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/constants"
	"github.com/benmeehan/camera-alarm-agent/internal/detectors"
	"github.com/benmeehan/camera-alarm-agent/internal/observability"
	"github.com/benmeehan/camera-alarm-agent/internal/services"
	"github.com/benmeehan/camera-alarm-agent/internal/utils"
	"github.com/benmeehan/camera-alarm-agent/pkg/file"
	"github.com/benmeehan/camera-alarm-agent/pkg/mqtt"
	"github.com/benmeehan/camera-alarm-agent/pkg/s3"
	"github.com/benmeehan/camera-alarm-agent/pkg/wireless"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Initialize file operations handler
	fileClient := file.NewFileService()

	config, err := utils.ParseFlags(args, fileClient)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stdout, utils.Usage())
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n\n%s", utils.ProgramName, err, utils.Usage())
		return 2
	}

	level := zerolog.WarnLevel
	if config.Debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("app", utils.ProgramName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs := observability.New(log)
	if config.Metrics.Address != "" {
		go func() {
			if err := obs.Serve(ctx, config.Metrics.Address); err != nil {
				log.Error().Err(err).Msg("Observability endpoint failed")
			}
		}()
	}

	detector, err := newDetector(ctx, config, fileClient, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize motion detection")
		return 1
	}
	defer detector.Close()

	var sampler services.SignalSource
	if config.WifiEnabled() {
		sampler = services.NewSignalSampler(config.Wifi.Interface, wireless.NewWirelessService(), log)
	}

	// Generate a unique MQTT Client ID by appending a UUID
	clientID := config.MQTT.ClientID + "-" + uuid.New().String()
	log.Debug().Str("client_id", clientID).Msg("Using MQTT Client ID")

	session := mqtt.NewMqttService(mqtt.SessionConfig{
		Host:              config.MQTT.Host,
		Port:              config.MQTT.Port,
		Keepalive:         time.Duration(config.MQTT.Keepalive) * time.Second,
		ClientID:          clientID,
		ConnectTimeout:    constants.ConnectTimeout,
		PublishTimeout:    constants.PublishTimeout,
		DisconnectQuiesce: constants.DisconnectQuiesce,
	}, log)
	session.SetLogSink(config.Debug)
	defer session.Close()

	alarm := services.NewAlarmService(config, session, detector, sampler,
		utils.NewRecurringTimer(), utils.NewSystemClock(), obs, log)

	if err := alarm.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Alarm agent stopped")
		return 1
	}

	log.Info().Msg("Shutting down gracefully...")
	return 0
}

// newDetector builds the detection source selected by the configuration.
func newDetector(ctx context.Context, config *utils.Config, fileClient file.FileOperations,
	log zerolog.Logger) (detectors.Detector, error) {

	if !config.CaptureMode() {
		detector, err := detectors.NewLogTailDetector(config.Detection.LogFile, config.Detection.Trigger,
			config.Detection.LogCooldown, log)
		if err != nil {
			return nil, err
		}
		return detector, nil
	}

	var uploader detectors.ArtifactUploader
	if config.Storage.Enabled {
		storage := s3.NewObjectStorage(config.Storage.Bucket)
		err := storage.Connect(ctx, config.Storage.Endpoint, config.Storage.AccessKey,
			config.Storage.SecretKey, config.Storage.UseSSL)
		if err != nil {
			return nil, err
		}
		uploader = storage
	}

	return detectors.NewCaptureWatchDetector(detectors.CaptureConfig{
		MarkerFile:   config.Detection.MarkerFile,
		ImageFile:    config.Detection.ImageFile,
		VideoFile:    config.Detection.VideoFile,
		DestDir:      config.Detection.CaptureDir,
		Cooldown:     config.Detection.CaptureCooldown,
		UploadPrefix: config.Storage.Prefix,
	}, fileClient, uploader, log), nil
}
