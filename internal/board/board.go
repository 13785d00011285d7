// Package board selects the control sink for the hardware we run on.
package board

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvoss/lighthald/internal/hal"
)

const (
	deviceTreeModelPath = "/proc/device-tree/model"
	sysfsLEDPath        = "/sys/class/leds"
)

// ledClasses are the LED class devices the HAL expects to exist.
var ledClasses = []string{
	"lcd-backlight",
	"keyboard-backlight",
	"battery-led",
	"red",
	"green",
	"blue",
}

// Model reads the device tree model to identify the board.
func Model() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}
	// Device tree model contains null bytes, trim them
	return strings.TrimRight(string(data), "\x00")
}

// NewSink probes the LED class devices and returns a sysfs sink when the
// expected control files are present. Boards without them get a no-op
// sink so every handler still reports success.
func NewSink(logger *slog.Logger) hal.Sink {
	model := Model()

	if missing := missingLEDs(); len(missing) > 0 {
		logger.Info("LED class devices not present, using no-op sink",
			"board_model", model,
			"missing", strings.Join(missing, ","))
		return hal.NopSink{Logger: logger}
	}

	logger.Info("Using sysfs control sink", "board_model", model)
	return hal.NewSysfsSink(logger)
}

// missingLEDs returns the expected LED class devices that do not exist.
func missingLEDs() []string {
	var missing []string
	for _, name := range ledClasses {
		if _, err := os.Stat(filepath.Join(sysfsLEDPath, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
