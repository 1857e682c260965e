package mqtt

import (
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// zerologAdapter forwards paho's diagnostic output to a zerolog logger.
type zerologAdapter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func (a zerologAdapter) Println(v ...interface{}) {
	a.logger.WithLevel(a.level).Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (a zerologAdapter) Printf(format string, v ...interface{}) {
	a.logger.WithLevel(a.level).Msgf(format, v...)
}

// SetLogSink routes the paho client's package loggers into the session logger.
// Transport debug traces are only forwarded when debug is set.
func (s *MqttService) SetLogSink(debug bool) {
	sink := s.logger.With().Str("component", "paho").Logger()

	mqtt.CRITICAL = zerologAdapter{logger: sink, level: zerolog.ErrorLevel}
	mqtt.ERROR = zerologAdapter{logger: sink, level: zerolog.ErrorLevel}
	mqtt.WARN = zerologAdapter{logger: sink, level: zerolog.WarnLevel}
	if debug {
		mqtt.DEBUG = zerologAdapter{logger: sink, level: zerolog.DebugLevel}
	} else {
		mqtt.DEBUG = mqtt.NOOPLogger{}
	}
}
