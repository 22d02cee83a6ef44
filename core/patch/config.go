package patch

// Config holds the security patch acceptance window.
type Config struct {
	// AheadDays is how far past the reference date a patch may be.
	// Zero allows no future patches.
	AheadDays int `mapstructure:"ahead_days" default:"30"`
	// BehindDays is how far before the reference date a patch may be.
	BehindDays int `mapstructure:"behind_days" default:"90"`
}

const (
	DefaultAheadDays  = 30
	DefaultBehindDays = 90
)

// DefaultConfig returns the standard 30 days ahead / 90 days behind window.
func DefaultConfig() Config {
	return Config{AheadDays: DefaultAheadDays, BehindDays: DefaultBehindDays}
}

// normalized fills unset bounds with the defaults. The zero Config means
// the default window. Otherwise a zero bound is kept as given (ahead_days: 0
// rejects any patch dated after the reference) and only negative bounds are
// replaced.
func (c Config) normalized() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	if c.AheadDays < 0 {
		c.AheadDays = DefaultAheadDays
	}
	if c.BehindDays < 0 {
		c.BehindDays = DefaultBehindDays
	}
	return c
}
