package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/dto"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
	"github.com/samuelarogbonlo/tata-pay/pkg/response"
)

// LedgerHandler handles collateral ledger endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Deposit handles POST /api/v1/collateral/deposit.
func (h *LedgerHandler) Deposit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	acct, err := h.ledgerSvc.Deposit(c.Request.Context(), actor, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(acct))
}

// RequestWithdrawal handles POST /api/v1/collateral/withdrawals.
func (h *LedgerHandler) RequestWithdrawal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wd, err := h.ledgerSvc.RequestWithdrawal(c.Request.Context(), actor, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toWithdrawalResponse(wd))
}

// ExecuteWithdrawal handles POST /api/v1/collateral/withdrawals/execute.
func (h *LedgerHandler) ExecuteWithdrawal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	acct, err := h.ledgerSvc.ExecuteWithdrawal(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(acct))
}

// CancelWithdrawal handles DELETE /api/v1/collateral/withdrawals.
func (h *LedgerHandler) CancelWithdrawal(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.ledgerSvc.CancelWithdrawal(c.Request.Context(), actor); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"cancelled": true})
}

// EmergencyWithdraw handles POST /api/v1/collateral/emergency-withdraw.
func (h *LedgerHandler) EmergencyWithdraw(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.EmergencyWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	principal, err := uuid.Parse(req.Principal)
	if err != nil {
		response.Error(c, apperror.Validation("invalid principal"))
		return
	}

	acct, err := h.ledgerSvc.EmergencyWithdraw(c.Request.Context(), actor, principal, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(acct))
}

// Slash handles POST /api/v1/collateral/slash.
func (h *LedgerHandler) Slash(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.SlashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	principal, err := uuid.Parse(req.Principal)
	if err != nil {
		response.Error(c, apperror.Validation("invalid principal"))
		return
	}

	acct, err := h.ledgerSvc.Slash(c.Request.Context(), actor, principal, req.Amount, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(acct))
}

// GetAccount handles GET /api/v1/collateral/accounts/:principal.
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	principal, ok := pathUUID(c, "principal")
	if !ok {
		return
	}

	acct, err := h.ledgerSvc.GetAccount(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(acct))
}

// GetWithdrawal handles GET /api/v1/collateral/accounts/:principal/withdrawal.
func (h *LedgerHandler) GetWithdrawal(c *gin.Context) {
	principal, ok := pathUUID(c, "principal")
	if !ok {
		return
	}

	wd, err := h.ledgerSvc.GetWithdrawal(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWithdrawalResponse(wd))
}
