package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	httpjson "github.com/Flv72S/Eterna-Home-sub001/internal/transport/http/json"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// RateLimit applies a per-client-IP token bucket. Used on the login endpoint
// to slow down credential stuffing; other endpoints are not limited.
func RateLimit(perSecond float64, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(perSecond), burst)
			limiters[ip] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiterFor(ip).Allow() {
				logger.WarnContext(r.Context(), "rate limit exceeded",
					"remote_ip", ip,
					"path", r.URL.Path,
				)
				httpjson.WriteError(w, http.StatusTooManyRequests, dErrors.CodeUnavailable,
					"too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
