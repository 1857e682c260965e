package detectors_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/constants"
	"github.com/benmeehan/camera-alarm-agent/internal/detectors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogFile(t *testing.T, initial string) (string, *os.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte(initial), 0600))

	w, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return path, w
}

func appendLine(t *testing.T, w *os.File, line string) {
	t.Helper()
	_, err := w.WriteString(line)
	require.NoError(t, err)
}

func TestLogTailDetector_OpenFailure(t *testing.T) {
	_, err := detectors.NewLogTailDetector(filepath.Join(t.TempDir(), "missing.txt"), constants.DefaultTrigger, 0, zerolog.Nop())
	assert.Error(t, err)
}

func TestLogTailDetector_IgnoresExistingContent(t *testing.T) {
	path, _ := newLogFile(t, "old got a new motion start\n")

	d, err := detectors.NewLogTailDetector(path, constants.DefaultTrigger, 0, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	assert.False(t, d.Poll(context.Background()).Detected)
}

func TestLogTailDetector_DetectsOnce(t *testing.T) {
	path, w := newLogFile(t, "")
	ctx := context.Background()

	d, err := detectors.NewLogTailDetector(path, constants.DefaultTrigger, 0, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, constants.DetectorLogTail, d.Name())
	assert.False(t, d.Poll(ctx).Detected)

	appendLine(t, w, "[isp] exposure adjusted\n")
	assert.False(t, d.Poll(ctx).Detected)

	appendLine(t, w, "2024 got a new motion start now\n")
	result := d.Poll(ctx)
	assert.True(t, result.Detected)
	assert.Equal(t, constants.DetectorLogTail, result.Source)

	// Nothing new: no detection.
	assert.False(t, d.Poll(ctx).Detected)
	assert.False(t, d.Poll(ctx).Detected)
}

func TestLogTailDetector_PartialLine(t *testing.T) {
	path, w := newLogFile(t, "")
	ctx := context.Background()

	d, err := detectors.NewLogTailDetector(path, constants.DefaultTrigger, 0, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	appendLine(t, w, "2024 got a new mot")
	assert.False(t, d.Poll(ctx).Detected)

	appendLine(t, w, "ion start now\n")
	assert.True(t, d.Poll(ctx).Detected)
	assert.False(t, d.Poll(ctx).Detected)
}

func TestLogTailDetector_BurstCollapsesIntoOneDetection(t *testing.T) {
	path, w := newLogFile(t, "")
	ctx := context.Background()

	d, err := detectors.NewLogTailDetector(path, constants.DefaultTrigger, 0, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	appendLine(t, w, "got a new motion start\nnoise\ngot a new motion start\n")
	assert.True(t, d.Poll(ctx).Detected)
	assert.False(t, d.Poll(ctx).Detected)
}

func TestLogTailDetector_CustomTriggerAndCooldown(t *testing.T) {
	path, w := newLogFile(t, "")

	d, err := detectors.NewLogTailDetector(path, "MOTION", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 5*time.Second, d.Cooldown())

	appendLine(t, w, "got a new motion start\n")
	assert.False(t, d.Poll(context.Background()).Detected)

	appendLine(t, w, "MOTION\n")
	assert.True(t, d.Poll(context.Background()).Detected)
}
