package utils

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Logger представляет логгер дашбордов
type Logger struct {
	sugar     *zap.SugaredLogger
	isVerbose bool
}

// NewLogger создает новый экземпляр логгера.
// В verbose режиме используется конфигурация разработки и уровень DEBUG.
func NewLogger(verbose bool) (*Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("не удалось создать логгер: %w", err)
	}

	return &Logger{sugar: zapLogger.Sugar(), isVerbose: verbose}, nil
}

// NewNopLogger возвращает логгер, который ничего не пишет (для тестов)
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// With возвращает дочерний логгер с дополнительными полями
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...), isVerbose: l.isVerbose}
}

// Методы логирования допускают nil-получатель и в этом случае ничего не пишут.

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, v...)
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, v...)
}

// Error логирует сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Errorf(format, v...)
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *Logger) Debug(format string, v ...interface{}) {
	if l == nil || !l.isVerbose {
		return
	}
	l.sugar.Debugf(format, v...)
}

// Verbose сообщает, включен ли отладочный режим
func (l *Logger) Verbose() bool {
	return l.isVerbose
}

// Sync сбрасывает буферы логгера
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// LogLoadComplete логирует завершение загрузки набора данных
func (l *Logger) LogLoadComplete(source string, rows, cols int, startTime time.Time) {
	l.Info("✅ Набор данных %s загружен: %d строк, %d столбцов за %v", source, rows, cols, time.Since(startTime))
}
