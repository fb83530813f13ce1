package middleware

import (
	"net/http"
	"strconv"
	"time"
)

type CORSOptions struct {
	AllowedOrigin string
	Methods       string
	Headers       string
	MaxAge        time.Duration
}

func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigin: "*",
		Methods:       "GET, POST, OPTIONS",
		Headers:       "Content-Type",
		MaxAge:        24 * time.Hour,
	}
}

// CORS sets the allow headers on every response and answers preflight
// requests itself.
func CORS(opts CORSOptions) Middleware {
	maxAge := strconv.Itoa(int(opts.MaxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", opts.AllowedOrigin)
			h.Set("Access-Control-Allow-Methods", opts.Methods)
			h.Set("Access-Control-Allow-Headers", opts.Headers)

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
