package config

import "time"

type Server struct {
	Address         string
	DBPath          string
	StatusRetention int
	RateLimit       int
	RateWindow      time.Duration
	// TrustProxyHeaders keys rate limits on CF-Connecting-IP or
	// X-Forwarded-For. Only safe behind a proxy that overwrites them.
	TrustProxyHeaders bool
	StatusMaxAge      time.Duration
	CleanupInterval   time.Duration
	LogLevel          string
	LogFormat         string
}

func LoadServer() *Server {
	return &Server{
		Address:           getEnv("HTTP_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "kunlun.db"),
		StatusRetention:   getEnvInt("STATUS_RETENTION", 10),
		RateLimit:         getEnvInt("RATE_LIMIT", 100),
		RateWindow:        getEnvDuration("RATE_WINDOW", time.Minute),
		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),
		StatusMaxAge:      getEnvDuration("STATUS_MAX_AGE", 0),
		CleanupInterval:   getEnvDuration("STATUS_CLEANUP_INTERVAL", time.Hour),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}
}
