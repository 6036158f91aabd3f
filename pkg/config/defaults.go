package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "carental"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	// Matches the 7-day sessions the web client expects.
	DefaultJWTTokenTTL = 7 * 24 * time.Hour

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingLockTTL = 10 * time.Second

	DefaultMinCarYear      = 1950
	DefaultMaxCarYear      = 2035
	DefaultBcryptCost      = 10
	DefaultMinPasswordSize = 8

	DefaultLogLevel = "info"

	DefaultPaginationLimit = 10
	MaxPaginationLimit     = 100
)
