package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
// It implements the Logger interface and adds optional trace correlation
// for log entries emitted inside traced requests.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance. It is exposed to allow
	// direct access to Zap-specific functionality when needed, but most
	// logging should go through the wrapper methods.
	Zap *zap.Logger

	// tracingEnabled controls whether the *WithContext methods extract
	// trace/span IDs from the context.
	tracingEnabled bool
}

// NewLoggerClient initializes and returns a new logger based on the given
// configuration.
//
// The logger is configured with:
//   - JSON encoding with ISO8601 timestamps
//   - Capital letter level encoding ("INFO", "ERROR")
//   - Process ID and service name as default fields
//   - Caller information with configurable skip depth
//   - Output directed to stderr
//
// If initialization fails, the function calls log.Fatal to terminate the
// application: a service that cannot log should not start.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "edge-gateway",
//	})
//	log.Info("listener started", nil)
func NewLoggerClient(cfg Config) *LoggerClient {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel

	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:         zap.NewAtomicLevelAt(logLevel),
		Encoding:      "json",
		EncoderConfig: encoderCfg,
		OutputPaths: []string{
			"stderr",
		},
		ErrorOutputPaths: []string{
			"stderr",
		},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	// Default to 1, which is correct when the logger is called directly.
	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	zapLogger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(callerSkip))
	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{
		Zap:            zapLogger,
		tracingEnabled: cfg.EnableTracing,
	}
}
