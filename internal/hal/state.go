package hal

// FlashMode selects whether a light blinks or stays static.
type FlashMode uint8

const (
	// FlashNone keeps the light static; duty timing is ignored.
	FlashNone FlashMode = iota
	// FlashTimed blinks the light in software using the duty timing.
	FlashTimed
	// FlashHardware blinks the light using the hardware blink engine.
	FlashHardware
)

// String returns the lowercase name of the flash mode.
func (m FlashMode) String() string {
	switch m {
	case FlashTimed:
		return "timed"
	case FlashHardware:
		return "hardware"
	default:
		return "none"
	}
}

// colorMask strips the alpha byte; only the low 24 bits of a color are
// meaningful to any handler.
const colorMask = 0x00ffffff

// LightState describes the requested state of a logical light. It is
// consumed synchronously per call and never retained.
type LightState struct {
	// Color is a packed 0xAARRGGBB value. The high byte is ignored.
	Color uint32
	// Flash selects static or blinking behavior.
	Flash FlashMode
	// FlashOnMS and FlashOffMS describe one blink cycle in milliseconds.
	// They are honored only when Flash is FlashTimed or FlashHardware.
	FlashOnMS  uint32
	FlashOffMS uint32
}

// rgb splits the masked color into its 8-bit channels.
func (s LightState) rgb() (r, g, b int) {
	c := s.Color & colorMask
	return int(c >> 16 & 0xff), int(c >> 8 & 0xff), int(c & 0xff)
}

// lit reports whether any of the 24 color bits are set.
func (s LightState) lit() bool {
	return s.Color&colorMask != 0
}

// duty returns the blink cycle timing, or zeros when the light is static.
func (s LightState) duty() (onMS, offMS int) {
	switch s.Flash {
	case FlashTimed, FlashHardware:
		return int(s.FlashOnMS), int(s.FlashOffMS)
	default:
		return 0, 0
	}
}

// Brightness converts the masked color to a single display brightness
// using fixed-point luminance weights 77/150/29 over 256.
func (s LightState) Brightness() int {
	r, g, b := s.rgb()
	return (77*r + 150*g + 29*b) >> 8
}
