package log

import (
	"fmt"
	"os"

	"github.com/bookwell/bookwell/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *zap.Logger

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Fallback logs a preformatted message without zap field escaping.
// zap does not support escape characters in fields, see
// https://github.com/uber-go/zap/issues/963
func Fallback(level, msg string) {
	switch level {
	case "Debug":
		fmt.Println(msg)
	default:
		fmt.Println(msg)
	}
}

func NewLogger() *zap.Logger {
	filename := config.Opts.LogFile
	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    config.Opts.LogFileMaxSize, // megabytes
		MaxBackups: config.Opts.LogFileMaxBackups,
		MaxAge:     config.Opts.LogFileMaxAge, // days
		Compress:   config.Opts.LogCompress,
	}

	return newZap(rotationLog, parseLevel(config.Opts.LogLevel))
}

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

func newZap(rotationLog *lumberjack.Logger, level zapcore.Level) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(config)
	consoleEncoder := zapcore.NewConsoleEncoder(config)

	consoleWriter := zapcore.AddSync(os.Stdout)
	rotationWriter := zapcore.AddSync(rotationLog)

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	rotationCore := zapcore.NewCore(fileEncoder, rotationWriter, level)

	core := zapcore.NewTee(consoleCore, rotationCore)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}
