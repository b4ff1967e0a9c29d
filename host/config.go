package host

import "time"

// Config tunes an Engine and its wazero Runtime. Zero fields take the defaults of
// DefaultConfig.
type Config struct {
	// MemoryLimitPages caps guest linear memory in 64 KiB pages. 0 means no cap.
	MemoryLimitPages uint32 `toml:"memory_limit_pages"`

	// LoopbackPages is the initial size of a loopback guest's simulated memory.
	LoopbackPages uint32 `toml:"loopback_pages"`

	// StubUnknownImports satisfies imports the host does not implement with functions
	// that return zero, instead of failing instantiation.
	StubUnknownImports bool `toml:"stub_unknown_imports"`

	// Delta is the tick length in seconds used by Step when none is given.
	Delta float64 `toml:"delta"`

	// Seed seeds every slot's random generator. 0 seeds from entropy.
	Seed uint64 `toml:"seed"`

	// StartTime is the initial game time.
	StartTime time.Time `toml:"start_time"`
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{
		LoopbackPages: 1,
		Delta:         1.0 / 60,
		StartTime:     time.Date(2024, time.November, 22, 13, 45, 5, 0, time.UTC),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LoopbackPages == 0 {
		c.LoopbackPages = d.LoopbackPages
	}
	if c.Delta <= 0 {
		c.Delta = d.Delta
	}
	if c.StartTime.IsZero() {
		c.StartTime = d.StartTime
	}
	return c
}
