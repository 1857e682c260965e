package detectors

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/constants"
	"github.com/benmeehan/camera-alarm-agent/internal/models"
	"github.com/rs/zerolog"
)

// LogTailDetector follows the camera log and reports motion when a newly
// written line contains the trigger phrase.
type LogTailDetector struct {
	path     string
	trigger  string
	cooldown time.Duration
	file     *os.File
	reader   *bufio.Reader
	partial  string // trailing bytes of a line whose newline has not arrived yet
	logger   zerolog.Logger
}

// NewLogTailDetector opens path and positions the read cursor at its current
// end, so only lines written after startup are considered.
func NewLogTailDetector(path, trigger string, cooldown time.Duration, logger zerolog.Logger) (*LogTailDetector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to seek %s: %w", path, err)
	}

	return &LogTailDetector{
		path:     path,
		trigger:  trigger,
		cooldown: cooldown,
		file:     f,
		reader:   bufio.NewReader(f),
		logger:   logger,
	}, nil
}

func (d *LogTailDetector) Name() string {
	return constants.DetectorLogTail
}

// Poll consumes every complete line appended since the previous call. It
// never blocks: running out of data simply ends the poll.
func (d *LogTailDetector) Poll(ctx context.Context) models.DetectionResult {
	detected := false

	for i := 0; i < constants.MaxLinesPerPoll; i++ {
		chunk, err := d.reader.ReadString('\n')
		if err != nil {
			// Keep the incomplete tail for the next poll.
			d.partial += chunk
			if !errors.Is(err, io.EOF) {
				d.logger.Error().Err(err).Str("path", d.path).Msg("Failed to read camera log")
			}
			break
		}

		line := d.partial + chunk
		d.partial = ""

		if strings.Contains(line, d.trigger) {
			d.logger.Debug().Str("line", strings.TrimSpace(line)).Msg("Motion start found in camera log")
			detected = true
		}
	}

	if !detected {
		return models.NoDetection
	}
	return models.DetectionResult{
		Detected: true,
		Source:   d.Name(),
		At:       time.Now(),
	}
}

func (d *LogTailDetector) Cooldown() time.Duration {
	return d.cooldown
}

func (d *LogTailDetector) Close() error {
	return d.file.Close()
}
