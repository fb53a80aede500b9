package apify

import "net/http"

type Option func(*Config)

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

// WithMemory sets the memory hint (in megabytes) for actor runs.
func WithMemory(mbytes int) Option {
	return func(c *Config) {
		c.memoryMBytes = mbytes
	}
}

func WithRunID(runID string) Option {
	return func(c *Config) {
		c.runID = runID
	}
}

func WithDatasetID(datasetID string) Option {
	return func(c *Config) {
		c.datasetID = datasetID
	}
}

func WithStoreID(storeID string) Option {
	return func(c *Config) {
		c.storeID = storeID
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
