package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used across the dashboard service.
// - package-level API so handlers and stores can log without plumbing
// - backed by zap: JSON in production, colored console at debug

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = build(zapcore.InfoLevel)
	sugar = base.Sugar()
)

func build(l zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if l == zapcore.DebugLevel {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	lg, err := cfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return lg
}

func parse(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	lvl := parse(l)
	mu.Lock()
	defer mu.Unlock()
	level.SetLevel(lvl)
	base = build(lvl)
	sugar = base.Sugar()
}

// SetCore swaps the underlying core while keeping the current level filter.
// Used by tests to capture output.
func SetCore(core zapcore.Core) (restore func()) {
	mu.Lock()
	prevBase, prevSugar := base, sugar
	base = zap.New(&levelCore{Core: core})
	sugar = base.Sugar()
	mu.Unlock()
	return func() {
		mu.Lock()
		base, sugar = prevBase, prevSugar
		mu.Unlock()
	}
}

// levelCore applies the package level on top of an arbitrary core.
type levelCore struct{ zapcore.Core }

func (c *levelCore) Enabled(l zapcore.Level) bool { return level.Enabled(l) && c.Core.Enabled(l) }

func (c *levelCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields)}
}

func s() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// L returns the structured logger for callers that want typed fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debugf(format string, v ...interface{}) { s().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { s().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { s().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { s().Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { s().Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) { s().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n")) }

func Debug(v string) { s().Debug(v) }
func Info(v string)  { s().Info(v) }
func Warn(v string)  { s().Warn(v) }
func Error(v string) { s().Error(v) }

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}

// Sync flushes buffered entries.
func Sync() { _ = L().Sync() }

// GinMiddleware logs one entry per request: Warn for 4xx, Error for 5xx, Info otherwise.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		lg := L()
		switch {
		case status >= 500:
			lg.Error("http request", fields...)
		case status >= 400:
			lg.Warn("http request", fields...)
		default:
			lg.Info("http request", fields...)
		}
	}
}
