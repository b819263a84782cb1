// Package auth implementa el núcleo de autenticación y sesiones.
//
// Componentes:
//
//   - Verifier: valida credenciales (username/email + password) contra
//     los hashes almacenados, con fallo uniforme.
//   - Manager: orquesta el registro de sesión en dos tiers (cache rápido +
//     almacén durable) con lookup-with-repair y borrado idempotente.
//   - Codec: firma y verifica el token compacto que viaja al cliente.
//     El token embebe SOLO el id de sesión: revocar la sesión invalida
//     el token de inmediato, sin esperar su expiración propia.
//   - Service: orquesta registro, login, logout y resolución del caller.
//
// El chequeo de autorización (rol mínimo por operación) corre siempre
// después de resolver la sesión; ver Authorize.
package auth
