package model

import "time"

// PortCounters are the raw device counters of one port, unsigned at the
// profile's native width. They may wrap or reset; interpretation is the
// statistics engine's job.
type PortCounters struct {
	RxBytes   uint64
	TxBytes   uint64
	CRCErrors uint64
}

// RawSample is one parsed snapshot of the statistics page. Immutable once
// produced. Ports that failed to parse are absent and counted in
// SkippedPorts.
type RawSample struct {
	CapturedAt   time.Time
	Ports        map[int]PortCounters
	SkippedPorts int
}

// PortStatus is the last-observed link state of one port.
type PortStatus struct {
	Connected bool
	LinkSpeed LinkSpeed
	// AutoNegotiation is false when the port speed is pinned in the UI.
	AutoNegotiation bool
}

// PoEStatus is the last-observed PoE state of one port.
type PoEStatus struct {
	AdminEnabled bool
	Delivering   bool
	PowerWatts   float64
}

// Identity holds the switch identity fields scraped from the info page.
type Identity struct {
	Name       string
	Model      string
	Firmware   string
	Bootloader string
	Serial     string
	MAC        string
}
