// Package http
package http

import (
	"net/http"

	"kunlun/internal/adapters/http/middleware"
	"kunlun/internal/adapters/ws/statusws"
	"kunlun/internal/config"
)

type RouterDeps struct {
	WsStatus *statusws.Handler
	Status   *StatusHandler
}

func NewRouter(cfg *config.Server, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New(middleware.CORS(middleware.DefaultCORSOptions()))

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	limited := middleware.New(middleware.RateLimit(limiter, cfg.TrustProxyHeaders, deps.Status.TooManyRequests))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	mux.HandleFunc("GET /status/stream", deps.WsStatus.Serve)

	// STATUS
	mux.HandleFunc("GET /status", deps.Status.Ping)
	mux.Handle("POST /status", limited.ThenFunc(deps.Status.Store))
	mux.Handle("GET /status/latest", limited.ThenFunc(deps.Status.Latest))

	mux.HandleFunc("/", deps.Status.NotFound)

	return globalMw.Then(mux)
}
