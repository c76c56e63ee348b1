package site

import "time"

// Config holds all runtime configuration for the site backend. The entry
// point populates it from environment variables.
type Config struct {
	Name        string `env:"SITE_NAME"`        // Site name for feeds (default "Brightforge")
	URL         string `env:"SITE_URL"`         // Canonical frontend URL (default "http://localhost:3000")
	Description string `env:"SITE_DESCRIPTION"` // Site description for the RSS channel

	Addr string `env:"ADDR"` // Listen address (default ":8080")

	MongoURI      string `env:"MONGO_URI"`      // Connection string (default "mongodb://localhost:27017")
	MongoDatabase string `env:"MONGO_DATABASE"` // Database name (default "site")

	// Origins allowed to call the API cross-origin; empty allows any.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	PostCacheTTL time.Duration `env:"POST_CACHE_TTL"` // Read-surface cache TTL (default 5min)

	SubmitLimit  int           `env:"SUBMIT_LIMIT"`  // Form submissions per IP per window (default 5)
	SubmitWindow time.Duration `env:"SUBMIT_WINDOW"` // Submission limiter window (default 1min)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Brightforge"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MongoURI == "" {
		c.MongoURI = "mongodb://localhost:27017"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "site"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.SubmitLimit == 0 {
		c.SubmitLimit = 5
	}
	if c.SubmitWindow == 0 {
		c.SubmitWindow = time.Minute
	}
}
