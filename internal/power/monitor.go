// Package power watches the kernel power supply state and drives the
// charging indicator light.
package power

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nvoss/lighthald/internal/events"
)

const defaultSysfsRoot = "/sys/class/power_supply"

// Monitor polls a power supply's sysfs status and publishes a
// PowerStateChangedEvent whenever the status or the low-capacity side of
// the threshold changes.
type Monitor struct {
	supply   string
	interval time.Duration
	bus      *events.Bus
	logger   *slog.Logger
	root     string
	stopChan chan struct{}
	doneChan chan struct{}

	lastStatus   string
	lastCapacity int
}

// NewMonitor creates a monitor for the named power supply.
func NewMonitor(supply string, interval time.Duration, bus *events.Bus, logger *slog.Logger) *Monitor {
	return &Monitor{
		supply:       supply,
		interval:     interval,
		bus:          bus,
		logger:       logger,
		root:         defaultSysfsRoot,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
		lastCapacity: -1,
	}
}

// Start begins polling in a background goroutine. An initial reading is
// published immediately so subscribers see the current state.
func (m *Monitor) Start() {
	m.logger.Info("Power monitor started", "supply", m.supply, "interval", m.interval)
	go m.run()
}

// Stop stops polling and waits for the poll loop to exit.
func (m *Monitor) Stop() {
	close(m.stopChan)
	<-m.doneChan
	m.logger.Info("Power monitor stopped")
}

func (m *Monitor) run() {
	defer close(m.doneChan)

	m.poll()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll reads the supply status and capacity and publishes on change.
func (m *Monitor) poll() {
	status := m.readStatus()
	capacity := m.readCapacity()

	if status == m.lastStatus && capacity == m.lastCapacity {
		return
	}
	m.lastStatus = status
	m.lastCapacity = capacity

	m.logger.Debug("Power state changed", "status", status, "capacity", capacity)
	m.bus.Publish(events.PowerStateChangedEvent{
		Supply:    m.supply,
		Status:    status,
		Capacity:  capacity,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// readStatus returns the kernel status string, "Unknown" when the
// supply is not readable.
func (m *Monitor) readStatus() string {
	data, err := os.ReadFile(filepath.Join(m.root, m.supply, "status"))
	if err != nil {
		return "Unknown"
	}
	return strings.TrimSpace(string(data))
}

// readCapacity returns the capacity percent, -1 when not readable.
func (m *Monitor) readCapacity() int {
	data, err := os.ReadFile(filepath.Join(m.root, m.supply, "capacity"))
	if err != nil {
		return -1
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return -1
	}
	return capacity
}
