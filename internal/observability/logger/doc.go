// Package logger arma el logger zap global del servicio.
//
// Hay una sola instancia, creada con Init al arrancar cada binario. El
// middleware de logging inyecta por contexto una copia con los campos del
// request; From(ctx) la recupera en cualquier capa, con fallback al global.
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Info("session created", logger.UserID(id))
//
// "dev" loguea a consola con colores; cualquier otro entorno emite JSON.
package logger
