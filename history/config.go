package history

// Config holds the tunables of a history instance (SPEC_FULL.md §6,
// "Configuration options").
type Config struct {
	// Depth is the soft cap on eventCount; overflow beyond Depth+20
	// triggers eviction of the oldest whole events.
	Depth int
	// NewGroupDelay is the gap, in the same units as Action.Time, after
	// which the next tracked edit starts a new event regardless of
	// adjacency.
	NewGroupDelay int64
	// PreserveItems makes popEvent rebuild items rather than consume
	// them, so the branch survives arbitrary remote-edit interleaving.
	PreserveItems bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{Depth: 100, NewGroupDelay: 500, PreserveItems: false}
}

func (c Config) addOptions() AddOptions {
	return AddOptions{Depth: c.Depth, PreserveItems: c.PreserveItems}
}
