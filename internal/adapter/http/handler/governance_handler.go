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

// GovernanceHandler handles proposal lifecycle endpoints.
type GovernanceHandler struct {
	govSvc ports.GovernanceService
}

// NewGovernanceHandler creates a new GovernanceHandler.
func NewGovernanceHandler(govSvc ports.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{govSvc: govSvc}
}

// Propose handles POST /api/v1/governance/proposals.
func (h *GovernanceHandler) Propose(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	p, err := h.govSvc.Propose(c.Request.Context(), actor, domain.ProposalKind(req.Kind), req.Payload, req.Expedited)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toProposalResponse(p))
}

// Approve handles POST /api/v1/governance/proposals/:id/approve.
func (h *GovernanceHandler) Approve(c *gin.Context) {
	h.lifecycle(c, h.govSvc.ApproveProposal)
}

// Execute handles POST /api/v1/governance/proposals/:id/execute.
func (h *GovernanceHandler) Execute(c *gin.Context) {
	h.lifecycle(c, h.govSvc.ExecuteProposal)
}

// Cancel handles POST /api/v1/governance/proposals/:id/cancel.
func (h *GovernanceHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, h.govSvc.CancelProposal)
}

// Get handles GET /api/v1/governance/proposals/:id.
func (h *GovernanceHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.govSvc.GetProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProposalResponse(p))
}

func (h *GovernanceHandler) lifecycle(c *gin.Context, op func(context.Context, domain.Actor, uuid.UUID) (*domain.Proposal, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := op(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toProposalResponse(p))
}
