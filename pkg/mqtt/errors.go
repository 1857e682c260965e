package mqtt

import "errors"

var (
	ErrConnectFailed    = errors.New("mqtt connect failed")
	ErrConnectionLost   = errors.New("mqtt connection lost")
	ErrNotConnected     = errors.New("mqtt session not connected")
	ErrAlreadyConnected = errors.New("mqtt session already started")
	ErrPublishFailed    = errors.New("mqtt publish failed")
	ErrTimeout          = errors.New("mqtt operation timed out")
)
