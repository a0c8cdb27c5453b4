package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/dto"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
	"github.com/samuelarogbonlo/tata-pay/pkg/response"
)

// OracleHandler handles oracle registry endpoints.
type OracleHandler struct {
	oracleSvc ports.OracleService
}

// NewOracleHandler creates a new OracleHandler.
func NewOracleHandler(oracleSvc ports.OracleService) *OracleHandler {
	return &OracleHandler{oracleSvc: oracleSvc}
}

// Register handles POST /api/v1/oracles/register.
func (h *OracleHandler) Register(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RegisterOracleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rec, err := h.oracleSvc.Register(c.Request.Context(), actor, req.Stake)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toOracleResponse(rec))
}

// Deregister handles POST /api/v1/oracles/deregister.
func (h *OracleHandler) Deregister(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	rec, err := h.oracleSvc.Deregister(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOracleResponse(rec))
}

// Vote handles POST /api/v1/batches/:id/votes.
func (h *OracleHandler) Vote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	batchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	rec, err := h.oracleSvc.Vote(c.Request.Context(), actor, batchID, domain.VoteKind(req.Kind), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toVoteRecordResponse(rec))
}

// GetVotes handles GET /api/v1/batches/:id/votes.
func (h *OracleHandler) GetVotes(c *gin.Context) {
	batchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	rec, err := h.oracleSvc.GetVotes(c.Request.Context(), batchID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toVoteRecordResponse(rec))
}

// Slash handles POST /api/v1/oracles/:id/slash.
func (h *OracleHandler) Slash(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	oracleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.SlashOracleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	rec, err := h.oracleSvc.SlashOracle(c.Request.Context(), actor, oracleID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOracleResponse(rec))
}

// Activate handles POST /api/v1/oracles/:id/activate.
func (h *OracleHandler) Activate(c *gin.Context) {
	h.setActive(c, h.oracleSvc.Activate)
}

// Deactivate handles POST /api/v1/oracles/:id/deactivate.
func (h *OracleHandler) Deactivate(c *gin.Context) {
	h.setActive(c, h.oracleSvc.Deactivate)
}

// SetThreshold handles PUT /api/v1/oracles/threshold.
func (h *OracleHandler) SetThreshold(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.oracleSvc.SetApprovalThreshold(c.Request.Context(), actor, req.Threshold); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"threshold": req.Threshold})
}

// Get handles GET /api/v1/oracles/:id.
func (h *OracleHandler) Get(c *gin.Context) {
	oracleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	rec, err := h.oracleSvc.GetOracle(c.Request.Context(), oracleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOracleResponse(rec))
}

func (h *OracleHandler) setActive(c *gin.Context, op func(context.Context, domain.Actor, uuid.UUID) (*domain.OracleRecord, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	oracleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	rec, err := op(c.Request.Context(), actor, oracleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOracleResponse(rec))
}
