package logger

import (
	"time"

	"go.uber.org/zap"
)

// Helpers de campos con las keys canónicas del servicio. Usarlos en vez de
// zap.String suelto mantiene los nombres consistentes entre capas.

// Campos de request HTTP.

func RequestID(v string) zap.Field       { return zap.String("request_id", v) }
func Method(v string) zap.Field          { return zap.String("method", v) }
func Path(v string) zap.Field            { return zap.String("path", v) }
func Status(v int) zap.Field             { return zap.Int("status", v) }
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func Bytes(v int) zap.Field              { return zap.Int("bytes", v) }

// Campos de dominio.

func UserID(v string) zap.Field   { return zap.String("user_id", v) }
func Username(v string) zap.Field { return zap.String("username", v) }

// SessionID loguea el id de sesión. Nunca loguear el token firmado.
func SessionID(v string) zap.Field { return zap.String("session_id", v) }

func StoreID(v string) zap.Field   { return zap.String("store_id", v) }
func ProductID(v string) zap.Field { return zap.String("product_id", v) }

// Campos de sistema.

// Layer identifica la capa: handler, service o repository.
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

// String es el escape genérico para keys ad hoc.
func String(key, v string) zap.Field { return zap.String(key, v) }
