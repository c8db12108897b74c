// Copyright (c) 2026 Porchlight. All rights reserved.

/*
Package constants provides centralized, immutable values shared between
layers: server timing, rate limits, session policy, and header names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "porchlight-api"
	AppVersion = "0.1.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out response writes.
	// Image uploads are decoded and written inside the request, so this is
	// deliberately generous.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often idle IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Admin Sessions

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "porchlight.site"

	// AdminSessionTTL is the lifetime of an admin session (token and Redis record).
	AdminSessionTTL = 24 * time.Hour

	// RedisPrefixAdminSession namespaces admin session records in Redis.
	RedisPrefixAdminSession = "admin:session:"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Database Schemas

const (
	SchemaContent   = "content"
	SchemaAnalytics = "analytics"
)

// # Content Limits

const (
	// SearchResultLimit caps /search responses.
	SearchResultLimit = 10

	// MaxUploadBytes caps a decoded data-URI image (8 MiB).
	MaxUploadBytes = 8 << 20
)
