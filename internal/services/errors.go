package services

import "errors"

var (
	// ErrInvalidInterface means the wireless statistics query failed.
	ErrInvalidInterface = errors.New("invalid wireless interface")
	// ErrNotApplicable means the interface reported no dBm signal level.
	ErrNotApplicable = errors.New("signal level not available in dBm")

	ErrConnect      = errors.New("unable to connect to broker")
	ErrBrokerIO     = errors.New("broker network I/O failed")
	ErrAlarmPublish = errors.New("unable to publish alarm message")
)
