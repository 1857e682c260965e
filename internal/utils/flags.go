package utils

import (
	"io"

	"github.com/benmeehan/camera-alarm-agent/pkg/file"
	"github.com/spf13/pflag"
)

// ProgramName is used in usage output.
const ProgramName = "mqttalarm"

type flagValues struct {
	configFile    string
	host          string
	port          int
	keepalive     int
	topic         string
	message       string
	capturePath   string
	lwtTopic      string
	lwtOnline     string
	lwtOffline    string
	wifiTopic     string
	wifiInterface string
	logFile       string
	metricsAddr   string
	debug         bool
}

func newFlagSet(v *flagValues) *pflag.FlagSet {
	defaults := DefaultConfig()

	fs := pflag.NewFlagSet(ProgramName, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	fs.StringVarP(&v.host, "host", "h", "", "MQTT broker host (required)")
	fs.StringVarP(&v.topic, "topic", "t", "", "alarm topic (required)")
	fs.StringVarP(&v.message, "message", "m", "", "alarm message (required)")
	fs.IntVarP(&v.port, "port", "p", defaults.MQTT.Port, "MQTT broker port")
	fs.IntVarP(&v.keepalive, "keepalive", "k", defaults.MQTT.Keepalive, "keepalive interval in seconds")
	fs.StringVarP(&v.capturePath, "capture-path", "c", "", "copy motion captures to this directory instead of watching the log")
	fs.StringVarP(&v.lwtTopic, "lwt-topic", "l", "", "last-will topic")
	fs.StringVarP(&v.lwtOnline, "lwt-online", "n", "", "last-will online payload (required with --lwt-topic)")
	fs.StringVarP(&v.lwtOffline, "lwt-offline", "f", "", "last-will offline payload (required with --lwt-topic)")
	fs.StringVarP(&v.wifiTopic, "wifi-topic", "w", "", "topic for periodic WiFi signal strength reports")
	fs.StringVar(&v.wifiInterface, "wifi-interface", defaults.Wifi.Interface, "wireless interface to sample")
	fs.StringVar(&v.logFile, "log-file", defaults.Detection.LogFile, "camera log followed for motion events")
	fs.StringVar(&v.metricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address")
	fs.StringVar(&v.configFile, "config", "", "YAML configuration file")
	fs.BoolVarP(&v.debug, "debug", "d", false, "verbose diagnostics")

	return fs
}

// Usage returns the option summary printed on invalid invocations.
func Usage() string {
	var v flagValues
	return "Usage: " + ProgramName + " [-d] -h host -t topic -m message [-p port] [-k keepalive]\n" +
		"          [-c capture-path]\n" +
		"          [--lwt-topic topic --lwt-online online --lwt-offline offline]\n" +
		"          [--wifi-topic wifistrength]\n\n" +
		newFlagSet(&v).FlagUsages()
}

// ParseFlags builds the Config from defaults, an optional YAML file given with
// --config, and the command line, in increasing order of precedence. The
// result is validated; a *ValidationError is returned when it is unusable.
// pflag.ErrHelp is returned when help was requested.
func ParseFlags(args []string, fileClient file.FileOperations) (*Config, error) {
	var v flagValues
	fs := newFlagSet(&v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if v.configFile != "" {
		if err := LoadConfig(v.configFile, cfg, fileClient); err != nil {
			return nil, err
		}
	}

	setString := func(name string, dst *string, val string) {
		if fs.Changed(name) {
			*dst = val
		}
	}
	setInt := func(name string, dst *int, val int) {
		if fs.Changed(name) {
			*dst = val
		}
	}

	setString("host", &cfg.MQTT.Host, v.host)
	setInt("port", &cfg.MQTT.Port, v.port)
	setInt("keepalive", &cfg.MQTT.Keepalive, v.keepalive)
	setString("topic", &cfg.Alarm.Topic, v.topic)
	setString("message", &cfg.Alarm.Message, v.message)
	setString("capture-path", &cfg.Detection.CaptureDir, v.capturePath)
	setString("lwt-topic", &cfg.LWT.Topic, v.lwtTopic)
	setString("lwt-online", &cfg.LWT.Online, v.lwtOnline)
	setString("lwt-offline", &cfg.LWT.Offline, v.lwtOffline)
	setString("wifi-topic", &cfg.Wifi.Topic, v.wifiTopic)
	setString("wifi-interface", &cfg.Wifi.Interface, v.wifiInterface)
	setString("log-file", &cfg.Detection.LogFile, v.logFile)
	setString("metrics-addr", &cfg.Metrics.Address, v.metricsAddr)
	if fs.Changed("debug") {
		cfg.Debug = v.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
