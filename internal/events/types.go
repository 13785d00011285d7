package events

// Event type constants for kelindar/event.
const (
	TypeLightChanged uint32 = iota + 1
	TypePowerStateChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// LightChangedEvent is published after a light state was applied.
type LightChangedEvent struct {
	Light      string `json:"light" example:"notifications" doc:"Logical light name"`
	Color      uint32 `json:"color" example:"16711680" doc:"Packed RGB color that was applied"`
	Flash      string `json:"flash" example:"timed" doc:"Flash mode: none, timed, hardware"`
	FlashOnMS  uint32 `json:"flash_on_ms,omitempty" example:"500" doc:"Blink on duration in milliseconds"`
	FlashOffMS uint32 `json:"flash_off_ms,omitempty" example:"500" doc:"Blink off duration in milliseconds"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Apply timestamp"`
}

// Type returns the event type identifier for LightChangedEvent.
func (e LightChangedEvent) Type() uint32 { return TypeLightChanged }

// PowerStateChangedEvent is published when the power supply status
// transitions, e.g. from Discharging to Charging.
type PowerStateChangedEvent struct {
	Supply    string `json:"supply" example:"battery" doc:"Power supply name"`
	Status    string `json:"status" example:"Charging" doc:"Kernel power supply status"`
	Capacity  int    `json:"capacity" example:"87" doc:"Battery capacity percent, -1 when unknown"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Transition timestamp"`
}

// Type returns the event type identifier for PowerStateChangedEvent.
func (e PowerStateChangedEvent) Type() uint32 { return TypePowerStateChanged }
