package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvoss/lighthald/internal/board"
	"github.com/nvoss/lighthald/internal/config"
	"github.com/nvoss/lighthald/internal/hal"
	"github.com/nvoss/lighthald/internal/logging"
	"github.com/nvoss/lighthald/internal/power"
)

// CreateSetCmd creates the one-shot `set` command, which applies a light
// state directly through the HAL without starting the daemon.
func CreateSetCmd() *cobra.Command {
	var (
		configFile string
		colorHex   string
		flashMode  string
		flashOn    uint32
		flashOff   uint32
	)

	setCmd := &cobra.Command{
		Use:   "set <light>",
		Short: "Apply a light state once and exit",
		Long: `Apply a color and optional flash pattern to one logical light.
Lights: backlight, keyboard, buttons, battery, notifications, attention.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logging.Initialize(config.LoadLoggingConfig(configFile))
			logger := logging.GetLogger("hal")

			color, err := power.ParseColor(colorHex)
			if err != nil {
				return err
			}

			var flash hal.FlashMode
			switch flashMode {
			case "none":
				flash = hal.FlashNone
			case "timed":
				flash = hal.FlashTimed
			case "hardware":
				flash = hal.FlashHardware
			default:
				return fmt.Errorf("unknown flash mode %q", flashMode)
			}

			controller := hal.New(board.NewSink(logger), logger)
			device, err := controller.Open(hal.Light(args[0]))
			if err != nil {
				return err
			}
			defer device.Close()

			return device.Apply(hal.LightState{
				Color:      color,
				Flash:      flash,
				FlashOnMS:  flashOn,
				FlashOffMS: flashOff,
			})
		},
	}

	setCmd.Flags().StringVarP(&configFile, "config", "c", "config.toml", "Path to configuration file")
	setCmd.Flags().StringVar(&colorHex, "color", "000000", "24-bit RGB color as hex, e.g. ff8800")
	setCmd.Flags().StringVar(&flashMode, "flash", "none", "Flash mode: none, timed, hardware")
	setCmd.Flags().Uint32Var(&flashOn, "on", 0, "Blink on duration in milliseconds")
	setCmd.Flags().Uint32Var(&flashOff, "off", 0, "Blink off duration in milliseconds")

	return setCmd
}
