package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/dto"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
	"github.com/samuelarogbonlo/tata-pay/pkg/response"
)

// FraudHandler handles fraud limit administration endpoints.
type FraudHandler struct {
	fraudSvc ports.FraudService
}

// NewFraudHandler creates a new FraudHandler.
func NewFraudHandler(fraudSvc ports.FraudService) *FraudHandler {
	return &FraudHandler{fraudSvc: fraudSvc}
}

// SetLimit handles PUT /api/v1/fraud/limits.
func (h *FraudHandler) SetLimit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.FraudLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	principal, err := uuid.Parse(req.Principal)
	if err != nil {
		response.Error(c, apperror.Validation("invalid principal"))
		return
	}

	limit := &domain.FraudLimit{
		Principal:       principal,
		ListStatus:      domain.ListStatus(req.ListStatus),
		HourlyMaxCount:  req.HourlyMaxCount,
		HourlyMaxAmount: req.HourlyMaxAmount,
		DailyMaxCount:   req.DailyMaxCount,
		DailyMaxAmount:  req.DailyMaxAmount,
	}
	if err := h.fraudSvc.SetLimit(c.Request.Context(), actor, limit); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toFraudLimitResponse(limit))
}

// GetLimit handles GET /api/v1/fraud/limits/:principal.
func (h *FraudHandler) GetLimit(c *gin.Context) {
	principal, ok := pathUUID(c, "principal")
	if !ok {
		return
	}

	limit, err := h.fraudSvc.GetLimit(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toFraudLimitResponse(limit))
}
