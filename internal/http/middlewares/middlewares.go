// Package middlewares define los decoradores HTTP del servicio: request id,
// logging, recover, headers de seguridad, autenticación, rol mínimo y rate
// limit de login. El router chi los encadena; acá solo se definen.
package middlewares

import "net/http"

// Middleware decora un http.Handler.
type Middleware func(http.Handler) http.Handler
