// internal/httpapi/middleware.go

package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"SpudsBot-Go/internal/usage"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestLogger logs one structured line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}

// rateLimit combines a process-wide limiter with a per-client sliding
// window. RealIP runs earlier in the chain, so RemoteAddr identifies the
// client.
func rateLimit(limiter *rate.Limiter, usageCache *usage.Cache) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				respondJSON(w, http.StatusTooManyRequests, detailResponse{
					Detail: "Grandpa Spuds is a little swamped right now. Please try again in a moment.",
				})
				return
			}

			clientID := r.RemoteAddr
			if !usageCache.Allow(clientID) {
				remaining := usageCache.TimeUntilReset(clientID)
				minutes := int(remaining.Minutes())
				seconds := int(remaining.Seconds()) % 60
				respondJSON(w, http.StatusTooManyRequests, detailResponse{
					Detail: fmt.Sprintf(
						"Thanks for chatting with Grandpa Spuds. We restrict to 10 messages per 10 minutes to keep costs low and allow everyone to use the guide. Please try again in %d minutes and %d seconds.",
						minutes, seconds,
					),
				})
				return
			}
			usageCache.Record(clientID)

			next.ServeHTTP(w, r)
		})
	}
}
