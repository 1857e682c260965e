package constants

import "time"

// Well-known paths written by the camera firmware.
const (
	DefaultLogFile    = "/tmp/log.txt"
	DefaultMarkerFile = "/tmp/motion.mp4"
	DefaultImageFile  = "/tmp/motion.jpg"
	DefaultVideoFile  = "/tmp/motion.mp4"
)

const (
	// DefaultTrigger is the log line fragment the camera emits when motion starts.
	DefaultTrigger = "got a new motion start"

	// CaptureImageName and CaptureVideoName are the names artifacts are copied to.
	CaptureImageName = "temp.jpg"
	CaptureVideoName = "temp.mp4"

	// DefaultCaptureCooldown covers the time a capture takes to fully materialize.
	DefaultCaptureCooldown = 59 * time.Second

	// MaxLinesPerPoll caps the number of log lines consumed in a single poll.
	MaxLinesPerPoll = 256
)

// Detector names.
const (
	DetectorLogTail      = "log_tail"
	DetectorCaptureWatch = "capture_watch"
)
