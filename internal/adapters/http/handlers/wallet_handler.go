package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prashant0321/wallet-service/internal/adapters/http/common"
	"github.com/prashant0321/wallet-service/internal/application/dtos"
)

// walletFacade is the slice of facade.Facade the wallet handlers call
// through. Declared here so tests can stub it without a real engine.
type walletFacade interface {
	TopUp(ctx context.Context, req dtos.TopUpRequest) (dtos.TransactionResultResponse, bool, error)
	IssueBonus(ctx context.Context, req dtos.IssueBonusRequest) (dtos.TransactionResultResponse, bool, error)
	Spend(ctx context.Context, req dtos.SpendRequest) (dtos.TransactionResultResponse, bool, error)
	GetBalance(ctx context.Context, accountID, assetTypeID string) (dtos.BalanceResponse, error)
	GetTransactionHistory(ctx context.Context, accountID, assetTypeID string, limit, offset int) (dtos.TransactionHistoryResponse, error)
}

// WalletHandler serves the balance/history/topup/bonus/spend routes.
// It calls straight through to the facade — this service has exactly
// one write path per operation, so there is no use-case-per-command
// layer to interpose between the handler and the facade the way a
// CQRS-style service would.
type WalletHandler struct {
	facade walletFacade
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(f walletFacade) *WalletHandler {
	return &WalletHandler{facade: f}
}

// WalletPathParams binds {account_id}/{asset_type_id} path segments
// shared by the balance and history routes.
type WalletPathParams struct {
	AccountID   string `uri:"account_id" binding:"required"`
	AssetTypeID string `uri:"asset_type_id" binding:"required"`
}

// GetBalance serves GET /wallet/balance/{account_id}/{asset_type_id}.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	var params WalletPathParams
	if !BindURI(c, &params) {
		return
	}

	result, err := h.facade.GetBalance(c.Request.Context(), params.AccountID, params.AssetTypeID)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.Success(c, http.StatusOK, result)
}

// GetTransactionHistory serves GET /wallet/transactions/{account_id}/{asset_type_id}.
func (h *WalletHandler) GetTransactionHistory(c *gin.Context) {
	var params WalletPathParams
	if !BindURI(c, &params) {
		return
	}
	pagination, ok := ParsePagination(c)
	if !ok {
		common.ValidationError(c, "limit must be in [1,100] and offset must be >= 0")
		return
	}

	result, err := h.facade.GetTransactionHistory(c.Request.Context(), params.AccountID, params.AssetTypeID, pagination.Limit, pagination.Offset)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.SuccessWithMeta(c, http.StatusOK, result, &common.APIMeta{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		Total:  result.Total,
	})
}

// TopUp serves POST /wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req dtos.TopUpRequest
	if !BindJSON(c, &req) {
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" && req.IdempotencyKey == "" {
		req.IdempotencyKey = key
	}

	result, fromCache, err := h.facade.TopUp(c.Request.Context(), req)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.Success(c, statusFor(fromCache), result)
}

// IssueBonus serves POST /wallet/bonus.
func (h *WalletHandler) IssueBonus(c *gin.Context) {
	var req dtos.IssueBonusRequest
	if !BindJSON(c, &req) {
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" && req.IdempotencyKey == "" {
		req.IdempotencyKey = key
	}

	result, fromCache, err := h.facade.IssueBonus(c.Request.Context(), req)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.Success(c, statusFor(fromCache), result)
}

// Spend serves POST /wallet/spend.
func (h *WalletHandler) Spend(c *gin.Context) {
	var req dtos.SpendRequest
	if !BindJSON(c, &req) {
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" && req.IdempotencyKey == "" {
		req.IdempotencyKey = key
	}

	result, fromCache, err := h.facade.Spend(c.Request.Context(), req)
	if err != nil {
		common.HandleEngineError(c, err)
		return
	}
	common.Success(c, statusFor(fromCache), result)
}

// statusFor picks the response code per spec §7: a freshly run
// mutation is 201, a replayed idempotency-key hit is 200.
func statusFor(fromCache bool) int {
	if fromCache {
		return http.StatusOK
	}
	return http.StatusCreated
}
