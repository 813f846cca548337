package utils

import (
	"bytes"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// errorBodyWriter keeps a copy of what failed responses write
type errorBodyWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *errorBodyWriter) Write(b []byte) (int, error) {
	if w.Status() >= 400 {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs every failed request once it is answered. Bodies are logged as
// written, so put it before gzip.
func ErrorLogMiddleware(c *gin.Context) {
	start := time.Now()
	w := &errorBodyWriter{ResponseWriter: c.Writer}
	c.Writer = w
	c.Next()
	if status := w.Status(); status >= 400 {
		log.Debug("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"body", w.body.String(),
		)
	}
}
