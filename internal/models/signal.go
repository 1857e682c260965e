package models

import "fmt"

// RssiSample is a single wireless signal strength reading.
type RssiSample struct {
	Interface string `json:"interface"`
	Level     uint8  `json:"level"` // raw device-reported level, 0-255
	RSSI      int    `json:"rssi"`  // estimated RSSI, 0-100
}

// Payload renders the sample in the Tasmota-style report shape.
func (s RssiSample) Payload() string {
	return fmt.Sprintf("{Wifi: {RSSI: %d }}", s.RSSI)
}
