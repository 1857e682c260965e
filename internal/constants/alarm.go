package constants

import "time"

const (
	// DefaultPort is the broker port used when none is configured.
	DefaultPort = 1883

	// DefaultKeepalive is the MQTT keepalive interval in seconds.
	DefaultKeepalive = 60

	// DefaultClientIDPrefix is combined with a UUID to build the MQTT client ID.
	DefaultClientIDPrefix = "mqttalarm"

	// CycleInterval is the wall-clock budget of one event loop iteration.
	CycleInterval = 1 * time.Second

	// PollTimeout bounds how long a single broker poll may block.
	PollTimeout = 1 * time.Second

	// ConnectTimeout bounds the initial broker connect attempt.
	ConnectTimeout = 10 * time.Second

	// PublishTimeout bounds how long a publish waits for its token.
	PublishTimeout = 5 * time.Second

	// DisconnectQuiesce is the time in milliseconds paho may spend flushing on disconnect.
	DisconnectQuiesce = 250
)
