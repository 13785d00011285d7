package hal

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"testing"
)

// fakeSink records writes in order and can fail specific paths.
type fakeSink struct {
	mu     sync.Mutex
	writes []sinkWrite
	fail   map[string]error
}

type sinkWrite struct {
	path  string
	value int
}

func (f *fakeSink) WriteInt(path string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[path]; ok {
		return err
	}
	f.writes = append(f.writes, sinkWrite{path, value})
	return nil
}

func (f *fakeSink) recorded() []sinkWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sinkWrite(nil), f.writes...)
}

func (f *fakeSink) lastValue(t *testing.T, path string) int {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.writes) - 1; i >= 0; i-- {
		if f.writes[i].path == path {
			return f.writes[i].value
		}
	}
	t.Fatalf("No write recorded for %s", path)
	return 0
}

func testController(sink Sink) *Controller {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return New(sink, logger)
}

func TestOpenUnknownLight(t *testing.T) {
	c := testController(&fakeSink{})

	device, err := c.Open("unknown-name")
	if !errors.Is(err, ErrUnsupportedLight) {
		t.Errorf("Open(unknown) error = %v, want ErrUnsupportedLight", err)
	}
	if device != nil {
		t.Errorf("Open(unknown) device = %v, want nil", device)
	}
}

func TestOpenAllKnownLights(t *testing.T) {
	c := testController(&fakeSink{})

	for _, name := range Lights() {
		device, err := c.Open(name)
		if err != nil {
			t.Errorf("Open(%s) failed: %v", name, err)
			continue
		}
		if device.Name() != name {
			t.Errorf("Open(%s).Name() = %s", name, device.Name())
		}
		device.Close()
	}
}

func TestDeviceNilSafety(t *testing.T) {
	var device *Device
	device.Close() // must not panic
	if err := device.Apply(LightState{}); !errors.Is(err, ErrUnsupportedLight) {
		t.Errorf("nil device Apply error = %v, want ErrUnsupportedLight", err)
	}
	if device.Name() != "" {
		t.Errorf("nil device Name() = %q, want empty", device.Name())
	}
}

func TestApplyAfterClose(t *testing.T) {
	c := testController(&fakeSink{})
	device, err := c.Open(LightBacklight)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	device.Close()
	if err := device.Apply(LightState{Color: 0xffffff}); !errors.Is(err, ErrUnsupportedLight) {
		t.Errorf("Apply after Close error = %v, want ErrUnsupportedLight", err)
	}
}

func TestBacklightHandler(t *testing.T) {
	sink := &fakeSink{}
	c := testController(sink)
	device, _ := c.Open(LightBacklight)
	defer device.Close()

	if err := device.Apply(LightState{Color: 0xffffff}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	writes := sink.recorded()
	if len(writes) != 1 {
		t.Fatalf("Expected 1 write, got %d", len(writes))
	}
	if writes[0].path != backlightFile || writes[0].value != 255 {
		t.Errorf("Wrote %d to %s, want 255 to %s", writes[0].value, writes[0].path, backlightFile)
	}
}

func TestKeyboardHandlerIsNoop(t *testing.T) {
	sink := &fakeSink{}
	c := testController(sink)
	device, _ := c.Open(LightKeyboard)
	defer device.Close()

	if err := device.Apply(LightState{Color: 0xffffff}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if writes := sink.recorded(); len(writes) != 0 {
		t.Errorf("Keyboard handler performed %d writes, want 0", len(writes))
	}
}

func TestButtonsHandler(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		want  int
	}{
		{"off for black", 0x000000, 0},
		{"on for any lit bit", 0x000001, 255},
		{"on for white", 0xffffff, 255},
		{"off when only alpha set", 0xff000000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			c := testController(sink)
			device, _ := c.Open(LightButtons)
			defer device.Close()

			if err := device.Apply(LightState{Color: tt.color}); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			writes := sink.recorded()
			if len(writes) != 1 {
				t.Fatalf("Expected 1 write, got %d", len(writes))
			}
			if writes[0].path != keyboardFile {
				t.Errorf("Buttons wrote to %s, want shared keyboard file %s", writes[0].path, keyboardFile)
			}
			if writes[0].value != tt.want {
				t.Errorf("Buttons wrote %d, want %d", writes[0].value, tt.want)
			}
		})
	}
}

func TestBatteryHandler(t *testing.T) {
	tests := []struct {
		name  string
		state LightState
		want  int
	}{
		{"off for zero", LightState{Color: 0}, 0},
		{"on for any nonzero color", LightState{Color: 0x000001}, 255},
		{"alpha-only still counts as nonzero", LightState{Color: 0xff000000}, 255},
		{"flash fields never affect output", LightState{Color: 0, Flash: FlashTimed, FlashOnMS: 500, FlashOffMS: 500}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			c := testController(sink)
			device, _ := c.Open(LightBattery)
			defer device.Close()

			if err := device.Apply(tt.state); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			writes := sink.recorded()
			if len(writes) != 1 {
				t.Fatalf("Expected exactly 1 write, got %d", len(writes))
			}
			if writes[0].path != chargingFile || writes[0].value != tt.want {
				t.Errorf("Wrote %d to %s, want %d to %s", writes[0].value, writes[0].path, tt.want, chargingFile)
			}
		})
	}
}

// rgbWriteOrder is the fixed order every RGB handler write sequence
// must follow.
var rgbWriteOrder = []string{
	redFile, greenFile, blueFile,
	redOnFile, redOffFile,
	greenOnFile, greenOffFile,
	blueOnFile, blueOffFile,
}

func TestNotificationsStaticColor(t *testing.T) {
	sink := &fakeSink{}
	c := testController(sink)
	device, _ := c.Open(LightNotifications)
	defer device.Close()

	if err := device.Apply(LightState{Color: 0x11223344}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	writes := sink.recorded()
	if len(writes) != 9 {
		t.Fatalf("Expected 9 writes, got %d", len(writes))
	}
	for i, w := range writes {
		if w.path != rgbWriteOrder[i] {
			t.Errorf("Write %d went to %s, want %s", i, w.path, rgbWriteOrder[i])
		}
	}

	// Channels from the masked color 0x223344
	if writes[0].value != 0x22 || writes[1].value != 0x33 || writes[2].value != 0x44 {
		t.Errorf("RGB writes = %d/%d/%d, want 34/51/68",
			writes[0].value, writes[1].value, writes[2].value)
	}
	// Static color disables blinking on all six delay files
	for _, w := range writes[3:] {
		if w.value != 0 {
			t.Errorf("Delay write to %s = %d, want 0", w.path, w.value)
		}
	}
}

func TestAttentionBlinkTiming(t *testing.T) {
	sink := &fakeSink{}
	c := testController(sink)
	device, _ := c.Open(LightAttention)
	defer device.Close()

	state := LightState{
		Color:      0xff0000,
		Flash:      FlashTimed,
		FlashOnMS:  500,
		FlashOffMS: 500,
	}
	if err := device.Apply(state); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for _, path := range []string{redOnFile, greenOnFile, blueOnFile} {
		if got := sink.lastValue(t, path); got != 500 {
			t.Errorf("Delay-on %s = %d, want 500", path, got)
		}
	}
	for _, path := range []string{redOffFile, greenOffFile, blueOffFile} {
		if got := sink.lastValue(t, path); got != 500 {
			t.Errorf("Delay-off %s = %d, want 500", path, got)
		}
	}
}

func TestRGBHalfDutyDisablesBlink(t *testing.T) {
	// Only one of on/off set: blinking must be disabled, not partial
	sink := &fakeSink{}
	c := testController(sink)
	device, _ := c.Open(LightNotifications)
	defer device.Close()

	state := LightState{Color: 0xff0000, Flash: FlashTimed, FlashOnMS: 500, FlashOffMS: 0}
	if err := device.Apply(state); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for _, path := range []string{redOnFile, redOffFile, greenOnFile, greenOffFile, blueOnFile, blueOffFile} {
		if got := sink.lastValue(t, path); got != 0 {
			t.Errorf("Delay %s = %d, want 0", path, got)
		}
	}
}

func TestRGBContinuesPastChannelFailure(t *testing.T) {
	greenErr := errors.New("green write failed")
	sink := &fakeSink{fail: map[string]error{greenFile: greenErr}}
	c := testController(sink)
	device, _ := c.Open(LightNotifications)
	defer device.Close()

	err := device.Apply(LightState{Color: 0xffffff})
	if !errors.Is(err, greenErr) {
		t.Errorf("Apply error = %v, want the channel failure %v", err, greenErr)
	}

	// Blue was still written after green failed
	if got := sink.lastValue(t, blueFile); got != 255 {
		t.Errorf("Blue channel = %d, want 255", got)
	}
}

func TestRGBLastFailureWins(t *testing.T) {
	redErr := errors.New("red write failed")
	blueErr := errors.New("blue write failed")
	sink := &fakeSink{fail: map[string]error{redFile: redErr, blueFile: blueErr}}
	c := testController(sink)
	device, _ := c.Open(LightAttention)
	defer device.Close()

	err := device.Apply(LightState{Color: 0xffffff})
	if !errors.Is(err, blueErr) {
		t.Errorf("Apply error = %v, want the last failure %v", err, blueErr)
	}
}

func TestRGBDelayFailuresNotSurfaced(t *testing.T) {
	sink := &fakeSink{fail: map[string]error{redOnFile: fs.ErrPermission}}
	c := testController(sink)
	device, _ := c.Open(LightNotifications)
	defer device.Close()

	if err := device.Apply(LightState{Color: 0xff0000}); err != nil {
		t.Errorf("Delay write failure surfaced as %v, want nil", err)
	}
}

func TestConcurrentApplies(t *testing.T) {
	sink := &fakeSink{}
	c := testController(sink)

	var wg sync.WaitGroup
	for _, name := range Lights() {
		for range 4 {
			wg.Add(1)
			go func(name Light) {
				defer wg.Done()
				device, err := c.Open(name)
				if err != nil {
					t.Errorf("Open(%s) failed: %v", name, err)
					return
				}
				defer device.Close()
				if err := device.Apply(LightState{Color: 0x804020}); err != nil {
					t.Errorf("Apply(%s) failed: %v", name, err)
				}
			}(name)
		}
	}
	wg.Wait()
}
