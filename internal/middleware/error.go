package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder captures the status and body of error responses written
// as plain text so they can be re-encoded as JSON
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        string
	plain       bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.statusCode = statusCode
	r.plain = statusCode >= 400 && !strings.HasPrefix(r.Header().Get("Content-Type"), "application/json")
	if r.plain {
		r.Header().Set("Content-Type", "application/json")
		r.Header().Del("Content-Length")
	}
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if r.plain {
		r.body += string(b)
		return len(b), nil
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler recovers panics and turns plain-text error responses (404s
// from the router, 405s) into JSON error bodies
func ErrorHandler(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic serving request",
					zap.Any("panic", err),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				if !rec.wroteHeader {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal Server Error"})
				}
				return
			}
			if rec.plain {
				msg := strings.TrimSpace(rec.body)
				if msg == "" {
					msg = http.StatusText(rec.statusCode)
				}
				_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
