package flights

import "time"

type Option func(*Config)

func WithActorID(actorID string) Option {
	return func(c *Config) {
		c.actorID = actorID
	}
}

// WithMaxListings caps the number of listings returned to the agent.
func WithMaxListings(n int) Option {
	return func(c *Config) {
		c.maxListings = n
	}
}

// WithMaxItems bounds the number of items the provider may scrape.
func WithMaxItems(n int) Option {
	return func(c *Config) {
		c.maxItems = n
	}
}

// WithClock overrides the clock used for the default departure date.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}
