package utils

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the rotated log file name for an application, e.g. "arto.log".
func LogFile(appName string) string {
	name := strings.ToLower(strings.Join(strings.Fields(appName), "-"))
	if name == "" {
		name = "arto"
	}
	return name + ".log"
}

// InitLogger builds the application logger and installs it as the zap
// global, so helpers without an injected logger (ResponseJSON) report
// through it too. The file always gets JSON lines; stdout switches to the
// console format in debug mode.
func InitLogger(app AppConfig) (*zap.Logger, error) {
	if app.LogPath != "" {
		if err := os.MkdirAll(app.LogPath, 0o755); err != nil {
			return nil, err
		}
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if app.Debug {
		level.SetLevel(zap.DebugLevel)
	}

	fileConfig := zap.NewProductionEncoderConfig()
	fileConfig.TimeKey = "timestamp"
	fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileConfig.EncodeCaller = zapcore.ShortCallerEncoder

	consoleEncoder := zapcore.NewJSONEncoder(fileConfig)
	if app.Debug {
		consoleConfig := zap.NewDevelopmentEncoderConfig()
		consoleConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(consoleConfig)
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(app.LogPath, LogFile(app.Name)),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), fileWriter, level),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("app", app.Name)),
	)
	zap.ReplaceGlobals(logger)
	return logger, nil
}
