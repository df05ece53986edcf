package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type Logger struct {
	*logrus.Entry
}

// New builds a logger for the given environment. Local environments get a
// coloured console formatter, everything else JSON.
func New(env, level string) *Logger {
	base := logrus.New()

	if env == "" || env == "local" || env == "development" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			ForceColors:     true,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	base.SetOutput(os.Stdout)

	switch strings.ToLower(level) {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Entry: logrus.NewEntry(base)}
}

// Discard returns a logger that writes nowhere. Used by tests and the CLI's quiet mode.
func Discard() *Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return &Logger{Entry: logrus.NewEntry(base)}
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Entry: l.Entry.WithField("component", name)}
}

// WithRequest attaches request metadata and returns an entry. The request id
// is echoed back on the response so callers can correlate logs.
func (l *Logger) WithRequest(c *fiber.Ctx) *logrus.Entry {
	reqID := c.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	c.Set(RequestIDHeader, reqID)

	return l.WithFields(logrus.Fields{
		"req_id":     reqID,
		"method":     c.Method(),
		"path":       c.Path(),
		"remote_ip":  c.IP(),
		"user_agent": c.Get(fiber.HeaderUserAgent),
	})
}

// WithError standardizes error logging
func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("error", err.Error())
}

type ctxKey struct{}

// NewContext stores a request-scoped entry on ctx.
func NewContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the entry stored by NewContext, or fallback.
func FromContext(ctx context.Context, fallback *logrus.Entry) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok && entry != nil {
		return entry
	}
	return fallback
}
