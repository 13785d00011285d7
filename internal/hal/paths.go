package hal

// Control file paths for the supported hardware target. Each logical
// light or channel maps to exactly one fixed sysfs path; they are not
// configurable at runtime. Notifications and attention share the same
// physical RGB LED.
const (
	backlightFile = "/sys/class/leds/lcd-backlight/brightness"
	keyboardFile  = "/sys/class/leds/keyboard-backlight/brightness"
	chargingFile  = "/sys/class/leds/battery-led/brightness"

	redFile      = "/sys/class/leds/red/brightness"
	redOnFile    = "/sys/class/leds/red/delay_on"
	redOffFile   = "/sys/class/leds/red/delay_off"
	greenFile    = "/sys/class/leds/green/brightness"
	greenOnFile  = "/sys/class/leds/green/delay_on"
	greenOffFile = "/sys/class/leds/green/delay_off"
	blueFile     = "/sys/class/leds/blue/brightness"
	blueOnFile   = "/sys/class/leds/blue/delay_on"
	blueOffFile  = "/sys/class/leds/blue/delay_off"
)
