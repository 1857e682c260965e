package mocks

import (
	"context"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDetector is a mock implementation of the detectors.Detector interface
type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDetector) Poll(ctx context.Context) models.DetectionResult {
	args := m.Called(ctx)
	return args.Get(0).(models.DetectionResult)
}

func (m *MockDetector) Cooldown() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockDetector) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockArtifactUploader is a mock implementation of the detectors.ArtifactUploader interface
type MockArtifactUploader struct {
	mock.Mock
}

func (m *MockArtifactUploader) UploadArtifact(ctx context.Context, localPath, objectName, contentType string) error {
	args := m.Called(ctx, localPath, objectName, contentType)
	return args.Error(0)
}
