package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// statusRecorder перехватывает статус ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает счётчик и гистограмму длительности HTTP
// запросов. Путь берётся из шаблона роута, а не из URL, чтобы не
// раздувать кардинальность метрик.
func MetricsMiddleware(collector *metrics.Metrics, _ string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			collector.HTTPRequestsTotal.
				WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).
				Inc()
			collector.HTTPRequestDuration.
				WithLabelValues(r.Method, path).
				Observe(time.Since(start).Seconds())
		})
	}
}
