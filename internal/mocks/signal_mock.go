package mocks

import (
	"github.com/benmeehan/camera-alarm-agent/internal/models"
	"github.com/benmeehan/camera-alarm-agent/pkg/wireless"
	"github.com/stretchr/testify/mock"
)

// MockStatsProvider is a mock implementation of the wireless.StatsProvider interface
type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) Query(iface string) (wireless.Stats, error) {
	args := m.Called(iface)
	return args.Get(0).(wireless.Stats), args.Error(1)
}

// MockSignalSource is a mock implementation of the services.SignalSource interface
type MockSignalSource struct {
	mock.Mock
}

func (m *MockSignalSource) Sample() (models.RssiSample, error) {
	args := m.Called()
	return args.Get(0).(models.RssiSample), args.Error(1)
}
