package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBrokerSession is a mock implementation of the services.BrokerSession interface.
// The registered OnConnected callback is kept so tests can fire it.
type MockBrokerSession struct {
	mock.Mock
	Callback func(error)
}

func (m *MockBrokerSession) RegisterLastWill(topic, offlinePayload string) error {
	args := m.Called(topic, offlinePayload)
	return args.Error(0)
}

func (m *MockBrokerSession) OnConnected(callback func(error)) {
	m.Callback = callback
}

func (m *MockBrokerSession) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBrokerSession) Poll(ctx context.Context, timeout time.Duration) error {
	args := m.Called(ctx, timeout)
	return args.Error(0)
}

func (m *MockBrokerSession) Publish(topic string, payload []byte, retained bool) error {
	args := m.Called(topic, payload, retained)
	return args.Error(0)
}

func (m *MockBrokerSession) Close() {
	m.Called()
}

// Published returns the (topic, payload) pairs of all Publish calls in order.
func (m *MockBrokerSession) Published() [][2]string {
	var out [][2]string
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			out = append(out, [2]string{call.Arguments.String(0), string(call.Arguments.Get(1).([]byte))})
		}
	}
	return out
}
