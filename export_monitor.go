package main

import (
	"context"
	"sync"
	"time"
)

// exportCheckInterval is how often the packet count is sampled. A count
// that moved since the previous check means the simulation is exporting.
const exportCheckInterval = 1 * time.Second

type packetCounter interface {
	Packets() uint64
}

// ExportMonitor infers whether the simulation is currently exporting
// telemetry from packet-count movement.
type ExportMonitor struct {
	counter  packetCounter
	onChange func(exporting bool)

	mu        sync.Mutex
	last      uint64
	exporting bool
}

func NewExportMonitor(counter packetCounter, onChange func(exporting bool)) *ExportMonitor {
	return &ExportMonitor{
		counter:  counter,
		onChange: onChange,
	}
}

// Tick samples the packet count once and reports the new state.
func (m *ExportMonitor) Tick() bool {
	count := m.counter.Packets()

	m.mu.Lock()
	exporting := count != m.last
	m.last = count
	changed := exporting != m.exporting
	m.exporting = exporting
	m.mu.Unlock()

	if changed && m.onChange != nil {
		m.onChange(exporting)
	}
	return exporting
}

func (m *ExportMonitor) Exporting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exporting
}

// Run ticks until ctx is cancelled.
func (m *ExportMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(exportCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Tick()
		}
	}
}
