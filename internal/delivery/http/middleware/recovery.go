package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	h "eventscheduler/internal/delivery/http/helpers"

	"github.com/gorilla/handlers"
)

// slogRecoveryLogger adapts slog to handlers.RecoveryHandlerLogger.
type slogRecoveryLogger struct {
	logger *slog.Logger
}

func (l slogRecoveryLogger) Println(v ...interface{}) {
	l.logger.Error("panic recovered", "err", fmt.Sprint(v...))
}

// panicWriter turns the bare 500 written by handlers.RecoveryHandler into the
// usual error envelope. Once a handler has written its own header, later
// WriteHeader calls are dropped.
type panicWriter struct {
	http.ResponseWriter
	wroteHeader bool
	panicked    bool
}

func (p *panicWriter) WriteHeader(code int) {
	if p.wroteHeader {
		return
	}
	p.wroteHeader = true
	if p.panicked {
		h.WriteJSONError(p.ResponseWriter, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
		return
	}
	p.ResponseWriter.WriteHeader(code)
}

func (p *panicWriter) Write(b []byte) (int, error) {
	p.wroteHeader = true
	return p.ResponseWriter.Write(b)
}

func (p *panicWriter) Unwrap() http.ResponseWriter {
	return p.ResponseWriter
}

// Recovery turns a panicking handler into a 500 internal_error response and
// logs the panic.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	recovered := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slogRecoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pw := w.(*panicWriter)
		completed := false
		defer func() { pw.panicked = !completed }()
		next.ServeHTTP(pw, r)
		completed = true
	}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recovered.ServeHTTP(&panicWriter{ResponseWriter: w}, r)
	})
}
