package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"stockadmin/internal/pkg/logger"
)

// statusRecorder captura o status escrito pelo handler para o log final.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger registra cada requisição da superfície do painel com um
// ID de correlação. O ID também é devolvido no header X-Request-ID para
// que o frontend possa citá-lo em relatórios de erro.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set("X-Request-ID", requestID)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			log.Info("Requisição processada.", map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     recorder.status,
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
