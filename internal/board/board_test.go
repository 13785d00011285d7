package board

import (
	"log/slog"
	"os"
	"testing"

	"github.com/nvoss/lighthald/internal/hal"
)

func TestNewSinkFallsBackToNop(t *testing.T) {
	if _, err := os.Stat("/sys/class/leds/lcd-backlight"); err == nil {
		t.Skip("Target LED class devices present on this machine")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sink := NewSink(logger)

	if _, ok := sink.(hal.NopSink); !ok {
		t.Errorf("NewSink without LED devices = %T, want hal.NopSink", sink)
	}

	// The no-op sink still reports success for every handler
	controller := hal.New(sink, logger)
	device, err := controller.Open(hal.LightBacklight)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer device.Close()
	if err := device.Apply(hal.LightState{Color: 0xffffff}); err != nil {
		t.Errorf("Apply through no-op sink failed: %v", err)
	}
}

func TestModelUnknownWithoutDeviceTree(t *testing.T) {
	if _, err := os.Stat(deviceTreeModelPath); err == nil {
		t.Skip("Device tree model present on this machine")
	}
	if got := Model(); got != "unknown" {
		t.Errorf("Model() = %q, want unknown", got)
	}
}
