package power

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Policy maps power supply states to charging indicator colors. Colors
// are 24-bit RGB hex strings as they appear in the policy file.
type Policy struct {
	ChargingColor string `toml:"charging_color"`
	FullColor     string `toml:"full_color"`
	LowColor      string `toml:"low_color"`
	// LowThreshold is the capacity percent at or below which the low
	// battery blink kicks in while discharging.
	LowThreshold int    `toml:"low_threshold"`
	BlinkOnMS    uint32 `toml:"blink_on_ms"`
	BlinkOffMS   uint32 `toml:"blink_off_ms"`
}

// DefaultPolicy returns the built-in indicator policy: amber while
// charging, green when full, blinking red when low.
func DefaultPolicy() Policy {
	return Policy{
		ChargingColor: "ffaa00",
		FullColor:     "00ff00",
		LowColor:      "ff0000",
		LowThreshold:  15,
		BlinkOnMS:     500,
		BlinkOffMS:    2000,
	}
}

// LoadPolicy reads an indicator policy file. Missing keys keep their
// defaults; a missing file is an error so the watcher can report it.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, err
	}
	if err := toml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return policy, nil
}

// ParseColor converts a 24-bit RGB hex string like "ff8800" to a packed
// color value.
func ParseColor(s string) (uint32, error) {
	if len(s) != 6 {
		return 0, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}
