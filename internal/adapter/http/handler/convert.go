package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/dto"
	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/middleware"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
	"github.com/samuelarogbonlo/tata-pay/pkg/response"
)

// requireActor pulls the resolved actor from the context, writing an auth
// error if the middleware did not run.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return domain.Actor{}, false
	}
	return actor, true
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func toAccountResponse(a *domain.CollateralAccount) dto.CollateralAccountResponse {
	return dto.CollateralAccountResponse{
		Principal:      a.Principal.String(),
		TotalDeposited: a.TotalDeposited,
		Available:      a.Available,
		Locked:         a.Locked,
		TotalWithdrawn: a.TotalWithdrawn,
		TotalSlashed:   a.TotalSlashed,
	}
}

func toWithdrawalResponse(w *domain.WithdrawalRequest) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		Principal:   w.Principal.String(),
		Amount:      w.Amount,
		RequestedAt: fmtTime(w.RequestedAt),
		Executed:    w.Executed,
	}
}

func toBatchResponse(b *domain.Batch) dto.BatchResponse {
	resp := dto.BatchResponse{
		ID:           b.ID.String(),
		Reference:    b.Reference,
		Owner:        b.Owner.String(),
		Sequence:     b.Sequence,
		Status:       string(b.Status),
		TotalAmount:  b.TotalAmount,
		ClaimedTotal: b.ClaimedTotal,
		ClaimedCount: b.ClaimedCount,
		CreatedAt:    fmtTime(b.CreatedAt),
		ProcessedAt:  fmtTimePtr(b.ProcessedAt),
		CompletedAt:  fmtTimePtr(b.CompletedAt),
	}
	for _, p := range b.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			Payee:     p.Payee.String(),
			Amount:    p.Amount,
			Claimed:   p.Claimed,
			ClaimedAt: fmtTimePtr(p.ClaimedAt),
		})
	}
	return resp
}

func toOracleResponse(o *domain.OracleRecord) dto.OracleResponse {
	return dto.OracleResponse{
		Oracle:         o.Oracle.String(),
		IsRegistered:   o.IsRegistered,
		IsActive:       o.IsActive,
		Stake:          o.Stake,
		ApprovalsCast:  o.ApprovalsCast,
		RejectionsCast: o.RejectionsCast,
		SlashCount:     o.SlashCount,
	}
}

func toVoteRecordResponse(r *domain.BatchVoteRecord) dto.VoteRecordResponse {
	return dto.VoteRecordResponse{
		BatchID:        r.BatchID.String(),
		ApprovalCount:  r.ApprovalCount,
		RejectionCount: r.RejectionCount,
		Processed:      r.Processed,
	}
}

func toProposalResponse(p *domain.Proposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:            p.ID.String(),
		Kind:          string(p.Kind),
		Payload:       p.Payload,
		Proposer:      p.Proposer.String(),
		Threshold:     p.Threshold,
		ApprovalCount: p.ApprovalCount,
		Status:        string(p.Status),
		Expedited:     p.Expedited,
		CreatedAt:     fmtTime(p.CreatedAt),
		ETA:           fmtTime(p.ETA),
		ExpiresAt:     fmtTime(p.ExpiresAt),
		ExecutedAt:    fmtTimePtr(p.ExecutedAt),
	}
}

func toFraudLimitResponse(l *domain.FraudLimit) dto.FraudLimitResponse {
	return dto.FraudLimitResponse{
		Principal:       l.Principal.String(),
		ListStatus:      string(l.ListStatus),
		HourlyMaxCount:  l.HourlyMaxCount,
		HourlyMaxAmount: l.HourlyMaxAmount,
		DailyMaxCount:   l.DailyMaxCount,
		DailyMaxAmount:  l.DailyMaxAmount,
	}
}

func toEventResponse(e *domain.Event) dto.EventResponse {
	var actor *string
	if e.Actor != nil {
		s := e.Actor.String()
		actor = &s
	}
	return dto.EventResponse{
		ID:         e.ID.String(),
		Type:       string(e.Type),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Actor:      actor,
		Payload:    e.Payload,
		CreatedAt:  fmtTime(e.CreatedAt),
	}
}
