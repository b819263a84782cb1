package catalog

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
	dto "github.com/dropDatabas3/tienda/internal/http/dto/catalog"
	httperrors "github.com/dropDatabas3/tienda/internal/http/errors"
	"github.com/dropDatabas3/tienda/internal/http/helpers"
	mw "github.com/dropDatabas3/tienda/internal/http/middlewares"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
)

// ProductController maneja los endpoints de productos.
type ProductController struct {
	products repository.ProductRepository
	stores   repository.StoreRepository
}

// NewProductController crea el controller de productos.
func NewProductController(products repository.ProductRepository, stores repository.StoreRepository) *ProductController {
	return &ProductController{products: products, stores: stores}
}

func productResponse(p *repository.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListByStore maneja GET /v1/stores/{storeID}/products.
// Es público: el catálogo de una tienda no requiere sesión.
func (c *ProductController) ListByStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID := chi.URLParam(r, "storeID")
	if storeID == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("storeID is required"))
		return
	}

	// La tienda debe existir (y no estar borrada) antes de listar.
	if _, err := c.stores.GetByID(ctx, storeID); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	products, err := c.products.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Limit:    limit,
		Offset:   offset,
	}
	for i := range products {
		resp.Products = append(resp.Products, productResponse(&products[i]))
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Create maneja POST /v1/products: publica un producto en la tienda del llamador.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mw.MustGetIdentity(ctx)
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("product.Create"))

	var req dto.CreateProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("title is required"))
		return
	}

	store, err := c.stores.GetByOwner(ctx, id.UserID)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	product, err := c.products.Create(ctx, repository.CreateProductInput{
		ID:          uuid.NewString(),
		StoreID:     store.ID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	log.Debug("product created", logger.ProductID(product.ID), logger.StoreID(store.ID))
	helpers.WriteJSON(w, http.StatusCreated, productResponse(product))
}

// Delete maneja DELETE /v1/products/{productID}.
// Solo admin (la ruta aplica RequireRole). El borrado es soft e idempotente.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("productID is required"))
		return
	}

	if err := c.products.Delete(ctx, productID); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
