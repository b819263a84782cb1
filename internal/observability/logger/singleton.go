package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init inicializa el logger global. Idempotente: solo la primera llamada
// tiene efecto. Llamar al inicio de cada binario.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L retorna el logger global. Si Init no fue llamado arma uno por defecto
// (dev, info) para que los tests y tooling no necesiten configuración.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// S retorna el SugaredLogger global, para logs printf-style en tooling.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync flushea buffers pendientes. Con defer en main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
