package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// paramValue reads a runtime parameter, wrapping store failures.
func paramValue(ctx context.Context, repo ports.ParamRepository, key string) (int64, error) {
	v, err := repo.Get(ctx, key)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("read param %s: %w", key, err))
	}
	return v, nil
}

// paramDuration reads a seconds-valued parameter.
func paramDuration(ctx context.Context, repo ports.ParamRepository, key string) (time.Duration, error) {
	v, err := paramValue(ctx, repo, key)
	if err != nil {
		return 0, err
	}
	return time.Duration(v) * time.Second, nil
}

// ensureNotPaused rejects the operation while the pause switch is set.
func ensureNotPaused(ctx context.Context, repo ports.ParamRepository) error {
	v, err := paramValue(ctx, repo, domain.ParamPaused)
	if err != nil {
		return err
	}
	if v != 0 {
		return apperror.ErrLedgerPaused()
	}
	return nil
}
