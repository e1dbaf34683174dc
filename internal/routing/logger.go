package routing

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/pelyams/product_store/internal/domain"
)

type contextKey string

const errorContainerKey contextKey = "errorContainer"

// Logger writes one JSON line per request to stdout and a log file.
type Logger struct {
	requestCount atomic.Uint64
	file         *os.File
	logger       *logrus.Logger
}

func NewLogger(startingRequestId uint64, fileName string, level string) (*Logger, error) {
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := newLogger(io.MultiWriter(file, os.Stdout), level)
	l.file = file
	l.requestCount.Store(startingRequestId)
	return l, nil
}

// NewWriterLogger logs to w only.
func NewWriterLogger(w io.Writer, level string) *Logger {
	return newLogger(w, level)
}

func newLogger(w io.Writer, level string) *Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return &Logger{logger: logger}
}

// Logrus exposes the underlying logger for components outside the HTTP layer.
func (l *Logger) Logrus() *logrus.Logger {
	return l.logger
}

func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

func (l *Logger) getNewRequestId() uint64 {
	return l.requestCount.Add(1) - 1
}

func (l *Logger) LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId := l.getNewRequestId()
		started := time.Now()
		errContainer := domain.NewErrorContainer()
		ctx := context.WithValue(r.Context(), errorContainerKey, &errContainer)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		entry := l.logger.WithFields(logrus.Fields{
			"request_id": reqId,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(started).String(),
		})
		if errContainer.Len() > 0 {
			errs := make([]string, 0, errContainer.Len())
			for _, err := range errContainer.Unwrap() {
				errs = append(errs, err.Error())
			}
			entry.WithField("errors", errs).Error("request failed")
			return
		}
		entry.Info("request served")
	})
}

// addError records err on the request so LoggerMiddleware can report it.
func addError(ctx context.Context, err error) {
	if errs, ok := ctx.Value(errorContainerKey).(*domain.ErrorContainer); ok {
		errs.Add(err)
	}
}
