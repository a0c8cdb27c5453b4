package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/dto"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
	"github.com/samuelarogbonlo/tata-pay/pkg/response"
)

// BatchHandler handles settlement batch endpoints.
type BatchHandler struct {
	settlementSvc ports.SettlementService
	fraudSvc      ports.FraudService
	eventRepo     ports.EventRepository
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(settlementSvc ports.SettlementService, fraudSvc ports.FraudService, eventRepo ports.EventRepository) *BatchHandler {
	return &BatchHandler{
		settlementSvc: settlementSvc,
		fraudSvc:      fraudSvc,
		eventRepo:     eventRepo,
	}
}

// Create handles POST /api/v1/batches. The fraud gate screens the owner
// before any collateral is locked.
func (h *BatchHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payees := make([]uuid.UUID, 0, len(req.Payees))
	for _, raw := range req.Payees {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidPayee())
			return
		}
		payees = append(payees, id)
	}

	var total int64
	for _, amount := range req.Amounts {
		total += amount
	}
	if h.fraudSvc != nil {
		if err := h.fraudSvc.ValidateTransaction(c.Request.Context(), actor.ID, total); err != nil {
			response.Error(c, err)
			return
		}
	}

	batch, err := h.settlementSvc.CreateBatch(c.Request.Context(), actor, payees, req.Amounts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toBatchResponse(batch))
}

// Approve handles POST /api/v1/batches/:id/approve.
func (h *BatchHandler) Approve(c *gin.Context) {
	h.transition(c, h.settlementSvc.Approve)
}

// Claim handles POST /api/v1/batches/:id/claim.
func (h *BatchHandler) Claim(c *gin.Context) {
	h.transition(c, h.settlementSvc.Claim)
}

// Cancel handles POST /api/v1/batches/:id/cancel.
func (h *BatchHandler) Cancel(c *gin.Context) {
	h.transition(c, h.settlementSvc.Cancel)
}

// Timeout handles POST /api/v1/batches/:id/timeout.
func (h *BatchHandler) Timeout(c *gin.Context) {
	h.transition(c, h.settlementSvc.Timeout)
}

// Fail handles POST /api/v1/batches/:id/fail.
func (h *BatchHandler) Fail(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	batchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.FailBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	batch, err := h.settlementSvc.Fail(c.Request.Context(), actor, batchID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBatchResponse(batch))
}

// Get handles GET /api/v1/batches/:id.
func (h *BatchHandler) Get(c *gin.Context) {
	batchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	batch, err := h.settlementSvc.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBatchResponse(batch))
}

// List handles GET /api/v1/batches.
func (h *BatchHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	batches, err := h.settlementSvc.ListBatches(c.Request.Context(), actor.ID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.BatchListResponse{Items: make([]dto.BatchResponse, 0, len(batches))}
	for i := range batches {
		resp.Items = append(resp.Items, toBatchResponse(&batches[i]))
	}
	resp.Count = len(resp.Items)
	response.OK(c, resp)
}

// Events handles GET /api/v1/batches/:id/events.
func (h *BatchHandler) Events(c *gin.Context) {
	batchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	events, err := h.eventRepo.List(c.Request.Context(), "batch", batchID.String(), limit)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, toEventResponse(&events[i]))
	}
	response.OK(c, gin.H{"items": items, "count": len(items)})
}

// transition runs one of the body-less batch lifecycle operations.
func (h *BatchHandler) transition(c *gin.Context, op func(context.Context, domain.Actor, uuid.UUID) (*domain.Batch, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	batchID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	batch, err := op(c.Request.Context(), actor, batchID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBatchResponse(batch))
}
