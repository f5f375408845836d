package logger

import (
	"os"
	"strings"

	"github.com/guardian/guardian-api/libs/go/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process wide logger. It stays nil until InitLogger runs; the
// package helpers fall back to a no-op logger in that case.
var Log *zap.Logger

// Component names used to tag child loggers
const (
	ComponentAPI      = "api"
	ComponentGuard    = "guard"
	ComponentRegistry = "registry"
	ComponentPause    = "pause_module"
	ComponentLedger   = "ledger"
	ComponentKeeper   = "keeper"
	ComponentStore    = "store"
	ComponentRPC      = "rpc"
	ComponentQueue    = "queue"
	ComponentSecrets  = "secrets"
	ComponentHTTP     = "http"
)

// LoggerConfig selects level and encoding.
type LoggerConfig struct {
	Level       string `json:"level"`
	Stage       string `json:"stage"`
	EnableJSON  bool   `json:"enable_json"`
	EnableColor bool   `json:"enable_color"`
}

// InitLogger configures Log for stage. prod gets JSON output, every other
// stage a colored console encoder. LOG_LEVEL overrides the info default.
func InitLogger(stage string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	prod := stage == constants.ProdEnvironment
	InitLoggerWithConfig(LoggerConfig{
		Level:       level,
		Stage:       stage,
		EnableJSON:  prod,
		EnableColor: !prod,
	})
}

// InitLoggerWithConfig replaces Log. It panics when zap cannot build the logger.
func InitLoggerWithConfig(config LoggerConfig) {
	level := parseLevel(config.Level)
	prod := config.Stage == constants.ProdEnvironment

	var zc zap.Config
	if prod || config.EnableJSON {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.MessageKey = "message"
		zc.EncoderConfig.LevelKey = "level"
		zc.EncoderConfig.CallerKey = "caller"
		zc.EncoderConfig.StacktraceKey = "stacktrace"
		zc.InitialFields = map[string]interface{}{
			"service": constants.ServiceName,
			"stage":   config.Stage,
		}
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if config.EnableColor {
			zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zc.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = prod && level > zapcore.DebugLevel

	built, err := zc.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = built
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case constants.ErrorLevel:
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func current() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

// Named returns a child of Log tagged with a component field.
func Named(component string) *zap.Logger {
	return current().With(zap.String("component", component))
}

func Info(msg string, fields ...zapcore.Field) {
	current().Info(msg, fields...)
}

func Error(msg string, fields ...zapcore.Field) {
	current().Error(msg, fields...)
}

func Debug(msg string, fields ...zapcore.Field) {
	current().Debug(msg, fields...)
}

func Warn(msg string, fields ...zapcore.Field) {
	current().Warn(msg, fields...)
}

// Fatal logs at FatalLevel and exits the process.
func Fatal(msg string, fields ...zapcore.Field) {
	current().Fatal(msg, fields...)
}

// With creates a child logger carrying fields.
func With(fields ...zapcore.Field) *zap.Logger {
	return current().With(fields...)
}

// Sync flushes buffered entries.
func Sync() error {
	return current().Sync()
}
