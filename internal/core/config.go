package core

// RuntimeConfig contains host-level settings passed to the runner at startup.
// Hosts use this to adapt to the display and to seed the simulation.
type RuntimeConfig struct {
	ScreenW  int   // Display width (terminal cells or window pixels)
	ScreenH  int   // Display height (terminal cells or window pixels)
	TickRate int   // Display refreshes per second (default 60)
	Seed     int64 // RNG seed; 0 means use current time in the platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}
