package middleware

import (
	"fmt"
	"net/http"

	"github.com/chybatronik/goUserRegistry/internal/errors"
	"github.com/chybatronik/goUserRegistry/internal/logging"
	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
)

// Recovery turns a panic in next into a logged 500 response. If the
// handler already started its response, only the log line is written.
func Recovery(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := NewResponseWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.WithRequestID(GetRequestID(r.Context())).Error("panic recovered",
					logging.FieldError, fmt.Sprint(rec),
					logging.FieldHTTPMethod, r.Method,
					logging.FieldHTTPPath, r.URL.Path,
				)

				if !wrapped.HeaderWritten() {
					errors.WriteError(wrapped, pkgerrors.ErrInternal)
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
