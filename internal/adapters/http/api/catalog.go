package api

import (
	"net/http"

	"github.com/okian/lobby/internal/domain/catalog"
)

// CatalogProvider exposes the loaded champion catalog.
type CatalogProvider interface {
	Catalog() catalog.Catalog
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	deps CatalogProvider
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogProvider) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type catalogResponse struct {
	Count     int      `json:"count"`
	Champions []string `json:"champions"`
}

// HandleGetCatalog handles GET /api/catalog requests. Champions keep the
// order of the source document.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, _ *http.Request) {
	cat := h.deps.Catalog()
	ids := cat.IDs()
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{Count: len(ids), Champions: ids})
}
