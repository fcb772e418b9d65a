package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records finished HTTP requests.
type RequestObserver interface {
	ObserveRequest(route, method string, code int, elapsed time.Duration)
}

// Metrics reports every request to obs, labelled with the mux pattern that
// will serve it so that path ids do not explode label cardinality.
func Metrics(obs RequestObserver, mux *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)
		obs.ObserveRequest(route, r.Method, wrapped.status, time.Since(start))
	})
}
