package constants

import "time"

const (
	// DefaultWifiInterface is the wireless interface sampled for signal strength.
	DefaultWifiInterface = "wlan0"

	// DefaultWifiInterval is the period between signal strength reports.
	DefaultWifiInterval = 60 * time.Second
)
