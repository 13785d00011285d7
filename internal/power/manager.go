package power

import (
	"log/slog"
	"sync"

	"github.com/nvoss/lighthald/internal/events"
	"github.com/nvoss/lighthald/internal/hal"
)

// Manager subscribes to power state events and drives the battery light
// through the HAL according to the active policy.
type Manager struct {
	controller  *hal.Controller
	bus         *events.Bus
	logger      *slog.Logger
	device      *hal.Device
	unsubscribe func()

	policyMux sync.RWMutex
	policy    Policy
}

// NewManager creates a manager that reacts to power state changes.
func NewManager(controller *hal.Controller, bus *events.Bus, logger *slog.Logger, policy Policy) *Manager {
	return &Manager{
		controller: controller,
		bus:        bus,
		logger:     logger,
		policy:     policy,
	}
}

// Start opens the battery light and begins listening for power events.
func (m *Manager) Start() error {
	device, err := m.controller.Open(hal.LightBattery)
	if err != nil {
		return err
	}
	m.device = device

	m.unsubscribe = m.bus.Subscribe(func(e events.PowerStateChangedEvent) {
		m.handleEvent(e)
	})
	m.logger.Info("Charging indicator started")
	return nil
}

// Stop unsubscribes and releases the battery light.
func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.device.Close()
	m.logger.Info("Charging indicator stopped")
}

// SetPolicy replaces the active policy. Called by the config watcher on
// live reload; the new policy applies from the next power event.
func (m *Manager) SetPolicy(policy Policy) {
	m.policyMux.Lock()
	m.policy = policy
	m.policyMux.Unlock()
	m.logger.Info("Indicator policy updated",
		"charging_color", policy.ChargingColor,
		"full_color", policy.FullColor,
		"low_threshold", policy.LowThreshold)
}

// handleEvent translates one power state event into a light state.
func (m *Manager) handleEvent(e events.PowerStateChangedEvent) {
	m.policyMux.RLock()
	policy := m.policy
	m.policyMux.RUnlock()

	state := stateFor(e.Status, e.Capacity, policy)
	if err := m.device.Apply(state); err != nil {
		m.logger.Warn("Failed to apply charging indicator state",
			"status", e.Status, "error", err)
	}
}

// stateFor maps a power supply status to the indicator light state.
func stateFor(status string, capacity int, policy Policy) hal.LightState {
	color := func(s string) uint32 {
		c, err := ParseColor(s)
		if err != nil {
			return 0
		}
		return c
	}

	switch status {
	case "Charging":
		return hal.LightState{Color: color(policy.ChargingColor)}
	case "Full":
		return hal.LightState{Color: color(policy.FullColor)}
	case "Discharging", "Not charging":
		if capacity >= 0 && capacity <= policy.LowThreshold {
			return hal.LightState{
				Color:      color(policy.LowColor),
				Flash:      hal.FlashTimed,
				FlashOnMS:  policy.BlinkOnMS,
				FlashOffMS: policy.BlinkOffMS,
			}
		}
		return hal.LightState{}
	default:
		return hal.LightState{}
	}
}
