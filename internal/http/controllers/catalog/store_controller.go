// Package catalog contiene los controllers HTTP de tiendas y productos.
package catalog

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
	dto "github.com/dropDatabas3/tienda/internal/http/dto/catalog"
	httperrors "github.com/dropDatabas3/tienda/internal/http/errors"
	"github.com/dropDatabas3/tienda/internal/http/helpers"
	mw "github.com/dropDatabas3/tienda/internal/http/middlewares"
)

// StoreController maneja los endpoints de tiendas.
type StoreController struct {
	stores repository.StoreRepository
}

// NewStoreController crea el controller de tiendas.
func NewStoreController(stores repository.StoreRepository) *StoreController {
	return &StoreController{stores: stores}
}

func storeResponse(s *repository.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Me maneja GET /v1/stores/me: la tienda del llamador autenticado.
// Todo usuario tiene tienda (se crea junto al registro), así que un
// ErrNotFound aquí indica datos inconsistentes y se responde 404 igual.
func (c *StoreController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mw.MustGetIdentity(ctx)

	store, err := c.stores.GetByOwner(ctx, id.UserID)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, storeResponse(store))
}
