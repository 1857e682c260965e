package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/constants"
	"github.com/benmeehan/camera-alarm-agent/pkg/file"
)

// Config represents the agent configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	MQTT struct {
		Host      string `yaml:"host"`      // MQTT broker hostname
		Port      int    `yaml:"port"`      // MQTT broker port
		Keepalive int    `yaml:"keepalive"` // Keepalive interval (in seconds)
		ClientID  string `yaml:"client_id"` // Client ID prefix, a UUID is appended
	} `yaml:"mqtt"`

	Alarm struct {
		Topic   string `yaml:"topic"`   // Topic the alarm is published to
		Message string `yaml:"message"` // Opaque alarm payload
	} `yaml:"alarm"`

	LWT struct {
		Topic   string `yaml:"topic"`   // Presence topic
		Online  string `yaml:"online"`  // Payload published after connecting
		Offline string `yaml:"offline"` // Payload the broker publishes on our behalf
	} `yaml:"lwt"`

	Wifi struct {
		Topic     string        `yaml:"topic"`     // Signal report topic, empty disables reporting
		Interface string        `yaml:"interface"` // Wireless interface to sample
		Interval  time.Duration `yaml:"interval"`  // Period between reports
	} `yaml:"wifi"`

	Detection struct {
		LogFile         string        `yaml:"log_file"`         // Camera log followed in log mode
		Trigger         string        `yaml:"trigger"`          // Log fragment that signals motion
		LogCooldown     time.Duration `yaml:"log_cooldown"`     // Suppression after a log detection
		CaptureDir      string        `yaml:"capture_dir"`      // Presence selects capture mode
		MarkerFile      string        `yaml:"marker_file"`      // Existence signals a capture
		ImageFile       string        `yaml:"image_file"`       // Snapshot copied on detection
		VideoFile       string        `yaml:"video_file"`       // Clip copied on detection
		CaptureCooldown time.Duration `yaml:"capture_cooldown"` // Suppression after a capture
	} `yaml:"detection"`

	Storage struct {
		Enabled   bool   `yaml:"enabled"`    // Upload copied captures to object storage
		Endpoint  string `yaml:"endpoint"`   // S3 compatible endpoint
		AccessKey string `yaml:"access_key"` // Access key ID
		SecretKey string `yaml:"secret_key"` // Secret access key
		Bucket    string `yaml:"bucket"`     // Destination bucket
		Prefix    string `yaml:"prefix"`     // Object name prefix
		UseSSL    bool   `yaml:"use_ssl"`    // Use HTTPS
	} `yaml:"storage"`

	Metrics struct {
		Address string `yaml:"address"` // Listen address for /metrics and /healthz, empty disables
	} `yaml:"metrics"`

	Debug bool `yaml:"debug"` // Verbose diagnostics
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.MQTT.Port = constants.DefaultPort
	cfg.MQTT.Keepalive = constants.DefaultKeepalive
	cfg.MQTT.ClientID = constants.DefaultClientIDPrefix
	cfg.Wifi.Interface = constants.DefaultWifiInterface
	cfg.Wifi.Interval = constants.DefaultWifiInterval
	cfg.Detection.LogFile = constants.DefaultLogFile
	cfg.Detection.Trigger = constants.DefaultTrigger
	cfg.Detection.MarkerFile = constants.DefaultMarkerFile
	cfg.Detection.ImageFile = constants.DefaultImageFile
	cfg.Detection.VideoFile = constants.DefaultVideoFile
	cfg.Detection.CaptureCooldown = constants.DefaultCaptureCooldown
	return cfg
}

// LoadConfig loads the YAML configuration from the specified file on top of cfg.
func LoadConfig(filename string, cfg *Config, fileClient file.FileOperations) error {
	if err := fileClient.ReadYamlFile(filename, cfg); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", filename, err)
	}
	return nil
}

// LWTEnabled reports whether the last-will triple is configured.
func (c *Config) LWTEnabled() bool {
	return c.LWT.Topic != ""
}

// WifiEnabled reports whether periodic signal reports are configured.
func (c *Config) WifiEnabled() bool {
	return c.Wifi.Topic != ""
}

// CaptureMode reports whether detection watches capture artifacts instead of the log.
func (c *Config) CaptureMode() bool {
	return c.Detection.CaptureDir != ""
}

// ValidationError lists every problem found in a Config.
type ValidationError struct {
	Missing   []string
	Invalid   []string
	Conflicts []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	if len(e.Conflicts) > 0 {
		parts = append(parts, "conflicts: "+strings.Join(e.Conflicts, ", "))
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0 && len(e.Conflicts) == 0
}

// Validate checks required fields and option combinations. It returns a
// *ValidationError naming every offending option, or nil.
func (c *Config) Validate() error {
	verr := &ValidationError{}

	if c.MQTT.Host == "" {
		verr.Missing = append(verr.Missing, "host")
	}
	if c.Alarm.Topic == "" {
		verr.Missing = append(verr.Missing, "topic")
	}
	if c.Alarm.Message == "" {
		verr.Missing = append(verr.Missing, "message")
	}

	// The last-will triple is all or nothing.
	lwt := map[string]string{
		"lwt-topic":   c.LWT.Topic,
		"lwt-online":  c.LWT.Online,
		"lwt-offline": c.LWT.Offline,
	}
	set := 0
	for _, v := range lwt {
		if v != "" {
			set++
		}
	}
	if set > 0 && set < len(lwt) {
		for _, name := range []string{"lwt-topic", "lwt-online", "lwt-offline"} {
			if lwt[name] == "" {
				verr.Missing = append(verr.Missing, name)
			}
		}
	}

	if c.MQTT.Port < 1 || c.MQTT.Port > 65535 {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("port %d", c.MQTT.Port))
	}
	if c.MQTT.Keepalive <= 0 {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("keepalive %d", c.MQTT.Keepalive))
	}
	if c.WifiEnabled() {
		if c.Wifi.Interface == "" {
			verr.Missing = append(verr.Missing, "wifi-interface")
		}
		if c.Wifi.Interval <= 0 {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("wifi interval %s", c.Wifi.Interval))
		}
	}
	if c.CaptureMode() {
		if c.Detection.MarkerFile == "" {
			verr.Missing = append(verr.Missing, "marker_file")
		}
		if c.Detection.CaptureCooldown < 0 {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("capture cooldown %s", c.Detection.CaptureCooldown))
		}
	} else {
		if c.Detection.LogFile == "" {
			verr.Missing = append(verr.Missing, "log-file")
		}
		if c.Detection.Trigger == "" {
			verr.Missing = append(verr.Missing, "trigger")
		}
		if c.Detection.LogCooldown < 0 {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("log cooldown %s", c.Detection.LogCooldown))
		}
	}

	if c.Storage.Enabled {
		if !c.CaptureMode() {
			verr.Conflicts = append(verr.Conflicts, "storage upload requires capture-path")
		}
		if c.Storage.Endpoint == "" {
			verr.Missing = append(verr.Missing, "storage endpoint")
		}
		if c.Storage.Bucket == "" {
			verr.Missing = append(verr.Missing, "storage bucket")
		}
	}

	if verr.empty() {
		return nil
	}
	return verr
}
