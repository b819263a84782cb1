// Package catalog define los DTOs de tiendas y productos.
package catalog

// StoreResponse es la representación pública de una tienda.
type StoreResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

// CreateProductRequest es el request para publicar un producto.
type CreateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProductResponse es la representación pública de un producto.
type ProductResponse struct {
	ID          string `json:"id"`
	StoreID     string `json:"store_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ProductListResponse es la respuesta de listado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
