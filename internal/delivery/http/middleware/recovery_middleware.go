package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"quickcare/pkg/response"

	"github.com/sirupsen/logrus"
)

// Recovery turns a handler panic into a 500 response.
func Recovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)

					log.WithFields(logrus.Fields{
						"panic": fmt.Sprintf("%v", rec),
						"stack": string(stack[:n]),
						"path":  r.URL.Path,
					}).Error("panic recovered")

					response.InternalServerError(w, "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
