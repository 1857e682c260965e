package models

import "time"

// DetectionResult is the outcome of polling a detection source once.
type DetectionResult struct {
	Detected bool      `json:"detected"`
	Source   string    `json:"source,omitempty"`
	At       time.Time `json:"at,omitempty"`
}

// NoDetection is returned by a detector when nothing happened this cycle.
var NoDetection = DetectionResult{}
