package providers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
)

// responseRecorder remembers what the wrapped handler sent.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  uint64
}

func (rec *responseRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += uint64(n)
	return n, err
}

func (rec *responseRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

func (rec *responseRecorder) code() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}

// InstrumentMiddleware logs every request under its method's log type and
// records request metrics labelled by the matched mux pattern, so candidate
// ids in paths do not inflate label cardinality.
func InstrumentMiddleware(logger Logger, metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &responseRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(started)
		label := r.Pattern
		if label == "" {
			label = "unmatched"
		}
		metrics.IncRequestsTotal(label, rec.code())
		metrics.ObserveRequestDuration(label, elapsed)
		logger.Debugf(GetLogTypeByRequestType(r.Method), "%s %s -> %d, %s in %s",
			r.Method, r.URL.Path, rec.code(), humanize.Bytes(rec.bytes), elapsed)
	})
}
