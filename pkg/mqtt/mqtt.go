package mqtt

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// MQTTClient defines the subset of the paho client used by the session.
type MQTTClient interface {
	Connect() mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
	Disconnect(quiesce uint)
}

// State is the lifecycle state of a broker session.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Terminated
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// SessionConfig holds the connection parameters of a session.
type SessionConfig struct {
	Host              string
	Port              int
	Keepalive         time.Duration
	ClientID          string
	ConnectTimeout    time.Duration
	PublishTimeout    time.Duration
	DisconnectQuiesce uint
}

type will struct {
	topic   string
	payload string
}

// MqttService owns a single broker connection. All methods except the paho
// handlers must be called from one goroutine; the handlers only enqueue events
// that Poll later dispatches on the caller's goroutine.
type MqttService struct {
	cfg       SessionConfig
	opts      *mqtt.ClientOptions
	newClient func(*mqtt.ClientOptions) MQTTClient
	client    MQTTClient
	logger    zerolog.Logger

	state       State
	will        *will
	onConnected func(error)
	notified    bool

	connAcks chan struct{}
	lost     chan error
}

// NewMqttService creates a session for the given broker. No connection is made
// until Connect is called.
func NewMqttService(cfg SessionConfig, logger zerolog.Logger) *MqttService {
	s := &MqttService{
		cfg:      cfg,
		logger:   logger,
		state:    Disconnected,
		connAcks: make(chan struct{}, 1),
		lost:     make(chan error, 1),
		newClient: func(opts *mqtt.ClientOptions) MQTTClient {
			return mqtt.NewClient(opts)
		},
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetKeepAlive(cfg.Keepalive)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	// Fail fast: a lost connection ends the agent and a supervisor restarts it.
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)
	opts.SetOnConnectHandler(s.handleConnect)
	opts.SetConnectionLostHandler(s.handleConnectionLost)
	s.opts = opts

	return s
}

// State returns the current lifecycle state.
func (s *MqttService) State() State {
	return s.state
}

// RegisterLastWill sets the payload the broker publishes on our behalf if the
// connection drops without a clean disconnect. It must precede Connect.
func (s *MqttService) RegisterLastWill(topic, offlinePayload string) error {
	if s.state != Disconnected {
		return ErrAlreadyConnected
	}

	s.opts.SetWill(topic, offlinePayload, 0, true)
	s.will = &will{topic: topic, payload: offlinePayload}
	s.logger.Debug().Str("topic", topic).Msg("Last will registered")
	return nil
}

// OnConnected registers the callback run once the broker acknowledged the
// connection, or once with the error if the connect attempt failed.
func (s *MqttService) OnConnected(callback func(error)) {
	s.onConnected = callback
}

// Connect performs a single blocking connect attempt.
func (s *MqttService) Connect(ctx context.Context) error {
	if s.state != Disconnected {
		return ErrAlreadyConnected
	}

	s.state = Connecting
	s.client = s.newClient(s.opts)
	s.logger.Debug().
		Str("host", s.cfg.Host).
		Int("port", s.cfg.Port).
		Dur("keepalive", s.cfg.Keepalive).
		Str("client_id", s.cfg.ClientID).
		Msg("Connecting to MQTT broker")

	token := s.client.Connect()
	err := waitToken(ctx, token, s.cfg.ConnectTimeout)
	if err != nil {
		s.state = Terminated
		err = fmt.Errorf("%w: %w", ErrConnectFailed, err)
		s.dispatchConnected(err)
		return err
	}

	s.state = Connected
	s.logger.Info().Str("host", s.cfg.Host).Msg("Connected to MQTT broker")
	return nil
}

// Poll waits for the next session event for at most timeout. Pending CONNACK
// notifications are dispatched to the OnConnected callback here.
func (s *MqttService) Poll(ctx context.Context, timeout time.Duration) error {
	if s.state != Connected {
		return ErrNotConnected
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-s.lost:
		s.state = Terminated
		return fmt.Errorf("%w: %w", ErrConnectionLost, err)
	case <-s.connAcks:
		s.dispatchConnected(nil)
		return nil
	case <-t.C:
	}

	if !s.client.IsConnected() {
		s.state = Terminated
		return ErrConnectionLost
	}
	return nil
}

// Publish sends payload with QoS 0 and reports whether it was handed to the
// network.
func (s *MqttService) Publish(topic string, payload []byte, retained bool) error {
	if s.state != Connected {
		return ErrNotConnected
	}

	token := s.client.Publish(topic, 0, retained, payload)
	if err := waitToken(context.Background(), token, s.cfg.PublishTimeout); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, err)
	}

	s.logger.Debug().Str("topic", topic).Bool("retained", retained).Msg("Message published")
	return nil
}

// Close publishes the offline presence payload, since a clean disconnect
// suppresses the broker-side will, and disconnects.
func (s *MqttService) Close() {
	if s.state == Connected {
		if s.will != nil {
			if err := s.Publish(s.will.topic, []byte(s.will.payload), true); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to publish offline presence")
			}
		}
		s.client.Disconnect(s.cfg.DisconnectQuiesce)
		s.logger.Info().Msg("Disconnected from MQTT broker")
	}
	s.state = Terminated
}

func (s *MqttService) dispatchConnected(err error) {
	if s.notified || s.onConnected == nil {
		return
	}
	s.notified = true
	s.onConnected(err)
}

// handleConnect runs on a paho goroutine.
func (s *MqttService) handleConnect(_ mqtt.Client) {
	select {
	case s.connAcks <- struct{}{}:
	default:
	}
}

// handleConnectionLost runs on a paho goroutine.
func (s *MqttService) handleConnectionLost(_ mqtt.Client, err error) {
	select {
	case s.lost <- err:
	default:
	}
}

func waitToken(ctx context.Context, token mqtt.Token, timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-t.C:
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
