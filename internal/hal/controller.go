// Package hal maps logical light devices onto kernel LED control files.
//
// The controller resolves a logical light name to a handler; each handler
// translates a LightState into one or more integer writes through a Sink.
// Backlight and buttons writes are serialized by a single controller-owned
// lock because both funnel through the same display subsystem; the
// remaining handlers write unlocked, matching the original hardware
// integration. Notifications and attention drive the same physical RGB
// LED, so concurrent requests to both can interleave.
package hal

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Light identifies one logical lighting function.
type Light string

const (
	LightBacklight     Light = "backlight"
	LightKeyboard      Light = "keyboard"
	LightButtons       Light = "buttons"
	LightBattery       Light = "battery"
	LightNotifications Light = "notifications"
	LightAttention     Light = "attention"
)

// ErrUnsupportedLight is returned by Open for unknown light names.
var ErrUnsupportedLight = errors.New("unsupported light")

// Lights returns every logical light the controller can open.
func Lights() []Light {
	return []Light{
		LightBacklight,
		LightKeyboard,
		LightButtons,
		LightBattery,
		LightNotifications,
		LightAttention,
	}
}

// Controller owns the translation from light states to control file
// writes. All devices opened from one controller share its sink and its
// backlight/buttons lock.
type Controller struct {
	sink   Sink
	logger *slog.Logger

	// mu serializes backlight and buttons brightness writes only. The
	// battery and RGB handlers are intentionally unguarded.
	mu sync.Mutex
}

// New creates a controller writing through the given sink.
func New(sink Sink, logger *slog.Logger) *Controller {
	return &Controller{sink: sink, logger: logger}
}

// Device is one opened logical light bound to its handler.
type Device struct {
	name  Light
	apply func(LightState) error
}

// Open resolves a logical light name and binds its handler into a new
// device. Unknown names fail with ErrUnsupportedLight and allocate
// nothing.
func (c *Controller) Open(name Light) (*Device, error) {
	h, ok := c.handler(name)
	if !ok {
		return nil, fmt.Errorf("open %q: %w", name, ErrUnsupportedLight)
	}
	return &Device{name: name, apply: h}, nil
}

// handler maps a logical light to its translation function.
func (c *Controller) handler(name Light) (func(LightState) error, bool) {
	switch name {
	case LightBacklight:
		return c.setBacklight, true
	case LightKeyboard:
		return c.setKeyboard, true
	case LightButtons:
		return c.setButtons, true
	case LightBattery:
		return c.setBattery, true
	case LightNotifications, LightAttention:
		return c.setRGB, true
	default:
		return nil, false
	}
}

// Name returns the logical light this device was opened for.
func (d *Device) Name() Light {
	if d == nil {
		return ""
	}
	return d.name
}

// Apply translates the state into control file writes.
func (d *Device) Apply(state LightState) error {
	if d == nil || d.apply == nil {
		return ErrUnsupportedLight
	}
	return d.apply(state)
}

// Close releases the device. Safe on nil; the controller's shared state
// is unaffected.
func (d *Device) Close() {
	if d == nil {
		return
	}
	d.apply = nil
}

// setBacklight writes the luminance-weighted brightness of the color to
// the LCD backlight, serialized against buttons writes.
func (c *Controller) setBacklight(state LightState) error {
	brightness := state.Brightness()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink.WriteInt(backlightFile, brightness)
}

// setKeyboard always succeeds without writing. Keyboard backlight
// control is not supported on this hardware target.
func (c *Controller) setKeyboard(LightState) error {
	return nil
}

// setButtons drives the button backlight fully on or off. The buttons
// light reuses the keyboard brightness file in the device tree.
func (c *Controller) setButtons(state LightState) error {
	value := 0
	if state.lit() {
		value = 255
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink.WriteInt(keyboardFile, value)
}

// setBattery drives the charging LED. The LED is binary only: duty
// timing is computed and discarded, and any nonzero color turns it on.
func (c *Controller) setBattery(state LightState) error {
	state.duty()

	value := 0
	if state.Color != 0 {
		value = 255
	}
	return c.sink.WriteInt(chargingFile, value)
}

// setRGB drives the shared RGB LED for notifications and attention.
// Channel writes continue past individual failures so a partial color is
// shown rather than none; the last channel failure is the one reported.
// Delay writes are best effort.
func (c *Controller) setRGB(state LightState) error {
	onMS, offMS := state.duty()
	red, green, blue := state.rgb()

	var err error
	for _, w := range []struct {
		path  string
		value int
	}{
		{redFile, red},
		{greenFile, green},
		{blueFile, blue},
	} {
		if werr := c.sink.WriteInt(w.path, w.value); werr != nil {
			err = werr
		}
	}

	if onMS > 0 && offMS > 0 {
		c.writeDelays(onMS, offMS)
	} else {
		c.writeDelays(0, 0)
	}
	return err
}

// writeDelays programs the blink duty cycle on all three channels in a
// fixed order. Zeros disable blinking.
func (c *Controller) writeDelays(onMS, offMS int) {
	c.sink.WriteInt(redOnFile, onMS)
	c.sink.WriteInt(redOffFile, offMS)
	c.sink.WriteInt(greenOnFile, onMS)
	c.sink.WriteInt(greenOffFile, offMS)
	c.sink.WriteInt(blueOnFile, onMS)
	c.sink.WriteInt(blueOffFile, offMS)
}
