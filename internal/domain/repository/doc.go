// Package repository define las interfaces de repositorio de dominio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente. El núcleo de autenticación (internal/auth)
// solo conoce estas capacidades, nunca los drivers concretos.
//
// Las implementaciones concretas viven en internal/store/pg (PostgreSQL)
// y en internal/cache (Redis / memoria).
package repository
