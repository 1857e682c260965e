package detectors

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/constants"
	"github.com/benmeehan/camera-alarm-agent/internal/models"
	"github.com/benmeehan/camera-alarm-agent/pkg/file"
	"github.com/rs/zerolog"
)

// CaptureConfig describes the capture artifacts written by the camera.
type CaptureConfig struct {
	MarkerFile   string        // Existence signals a new capture
	ImageFile    string        // Snapshot to copy
	VideoFile    string        // Clip to copy
	DestDir      string        // Directory the artifacts are copied into
	Cooldown     time.Duration // Time a capture takes to fully materialize
	UploadPrefix string        // Object name prefix used when uploading
}

// CaptureWatchDetector reports motion while the capture marker file exists and
// copies the snapshot and clip out of the camera's scratch area.
type CaptureWatchDetector struct {
	cfg        CaptureConfig
	fileClient file.FileOperations
	uploader   ArtifactUploader // optional
	logger     zerolog.Logger
}

// NewCaptureWatchDetector creates a CaptureWatchDetector. uploader may be nil.
func NewCaptureWatchDetector(cfg CaptureConfig, fileClient file.FileOperations,
	uploader ArtifactUploader, logger zerolog.Logger) *CaptureWatchDetector {

	return &CaptureWatchDetector{
		cfg:        cfg,
		fileClient: fileClient,
		uploader:   uploader,
		logger:     logger,
	}
}

func (d *CaptureWatchDetector) Name() string {
	return constants.DetectorCaptureWatch
}

// Poll checks for the marker file. Copy and upload failures are logged and do
// not suppress the detection.
func (d *CaptureWatchDetector) Poll(ctx context.Context) models.DetectionResult {
	exists, err := d.fileClient.IsFileExists(d.cfg.MarkerFile)
	if err != nil {
		d.logger.Error().Err(err).Str("path", d.cfg.MarkerFile).Msg("Failed to check capture marker")
		return models.NoDetection
	}
	if !exists {
		return models.NoDetection
	}

	now := time.Now()
	d.logger.Debug().Str("marker", d.cfg.MarkerFile).Msg("Motion capture detected")

	artifacts := []struct {
		src         string
		name        string
		contentType string
	}{
		{d.cfg.ImageFile, constants.CaptureImageName, "image/jpeg"},
		{d.cfg.VideoFile, constants.CaptureVideoName, "video/mp4"},
	}

	for _, a := range artifacts {
		dst := filepath.Join(d.cfg.DestDir, a.name)
		if err := d.fileClient.CopyFile(a.src, dst); err != nil {
			d.logger.Error().Err(err).Str("src", a.src).Str("dst", dst).Msg("Failed to copy capture artifact")
			continue
		}

		if d.uploader == nil {
			continue
		}
		object := d.objectName(now, a.name)
		if err := d.uploader.UploadArtifact(ctx, dst, object, a.contentType); err != nil {
			d.logger.Error().Err(err).Str("object", object).Msg("Failed to upload capture artifact")
			continue
		}
		d.logger.Debug().Str("object", object).Msg("Capture artifact uploaded")
	}

	return models.DetectionResult{
		Detected: true,
		Source:   d.Name(),
		At:       now,
	}
}

// objectName builds a unique object key so uploads never overwrite each other.
func (d *CaptureWatchDetector) objectName(at time.Time, name string) string {
	return path.Join(d.cfg.UploadPrefix, fmt.Sprintf("%s-%s", at.UTC().Format("20060102T150405Z"), name))
}

func (d *CaptureWatchDetector) Cooldown() time.Duration {
	return d.cfg.Cooldown
}

func (d *CaptureWatchDetector) Close() error {
	return nil
}
