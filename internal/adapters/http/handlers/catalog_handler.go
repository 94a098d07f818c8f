package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prashant0321/wallet-service/internal/adapters/http/common"
	"github.com/prashant0321/wallet-service/internal/application/dtos"
)

// catalogFacade is the slice of facade.Facade the catalog handlers
// call through.
type catalogFacade interface {
	ListAssetTypes(ctx context.Context, offset, limit int) ([]dtos.AssetTypeDTO, error)
	ListAccounts(ctx context.Context, offset, limit int, includeSystem bool) ([]dtos.AccountDTO, error)
}

// CatalogHandler serves the read-only reference endpoints: the asset
// types wallets may be denominated in, and the accounts that hold
// them.
type CatalogHandler struct {
	facade catalogFacade
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(f catalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: f}
}

// ListAssetTypes serves GET /wallet/asset-types.
func (h *CatalogHandler) ListAssetTypes(c *gin.Context) {
	pagination, ok := ParsePagination(c)
	if !ok {
		common.ValidationError(c, "limit must be in [1,100] and offset must be >= 0")
		return
	}

	result, err := h.facade.ListAssetTypes(c.Request.Context(), pagination.Offset, pagination.Limit)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.Success(c, http.StatusOK, result)
}

// ListAccounts serves GET /wallet/accounts?include_system.
func (h *CatalogHandler) ListAccounts(c *gin.Context) {
	pagination, ok := ParsePagination(c)
	if !ok {
		common.ValidationError(c, "limit must be in [1,100] and offset must be >= 0")
		return
	}
	includeSystem := c.Query("include_system") == "true"

	result, err := h.facade.ListAccounts(c.Request.Context(), pagination.Offset, pagination.Limit, includeSystem)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.Success(c, http.StatusOK, result)
}
