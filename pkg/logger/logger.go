package logger

import (
	"go.uber.org/zap"
)

var log = zap.Must(zap.NewDevelopment())

// Init 按运行模式重建全局 logger
func Init(mode string) {
	if mode == "release" {
		log = zap.Must(zap.NewProduction())
	} else {
		log = zap.Must(zap.NewDevelopment())
	}
}

func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

func Sync() { _ = log.Sync() }
