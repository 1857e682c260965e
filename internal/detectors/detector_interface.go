package detectors

import (
	"context"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/models"
)

// Detector defines a source of motion events polled once per event loop cycle.
type Detector interface {
	Name() string                                    // Name of the detector (e.g., "log_tail")
	Poll(ctx context.Context) models.DetectionResult // Check for motion since the last poll
	Cooldown() time.Duration                         // Suppression window after a detection
	Close() error                                    // Release the underlying resources
}

// ArtifactUploader ships a captured artifact to remote storage.
type ArtifactUploader interface {
	UploadArtifact(ctx context.Context, localPath, objectName, contentType string) error
}
