package logger

import (
	"os"
	"strings"

	"github.com/xelth-com/goodstrack/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger from configuration.
// Console format uses zap's development encoder, anything else is JSON on stdout.
// When cfg.File is set, records are also written to a rotating JSON file.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.OutputPaths = []string{"stdout"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}
	zc.Level = level

	base, err := zc.Build()
	if err != nil {
		return nil, err
	}

	if cfg.File != "" {
		fileCore := newFileCore(cfg.File, level)
		base = base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	if cfg.ServiceName != "" {
		base = base.With(zap.String("service_name", cfg.ServiceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		base = base.With(zap.String("hostname", hostname))
	}

	return base, nil
}

func newFileCore(path string, level zapcore.LevelEnabler) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 5,
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), writer, level)
}
