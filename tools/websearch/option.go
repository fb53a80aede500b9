package websearch

type Option func(*Config)

func WithActorID(actorID string) Option {
	return func(c *Config) {
		c.actorID = actorID
	}
}

// WithMaxResults caps the number of search results returned to the agent.
func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}
