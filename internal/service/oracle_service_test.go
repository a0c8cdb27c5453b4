package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports/mocks"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

type oracleTestDeps struct {
	svc        *OracleServiceImpl
	oracleRepo *mocks.MockOracleRepository
	voteRepo   *mocks.MockVoteRepository
	batchRepo  *mocks.MockBatchRepository
	executor   *mocks.MockSettlementExecutor
	params     *mocks.MockParamRepository
	recorder   *mocks.MockEventRecorder
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupOracleService(t *testing.T) *oracleTestDeps {
	ctrl := gomock.NewController(t)
	d := &oracleTestDeps{
		oracleRepo: mocks.NewMockOracleRepository(ctrl),
		voteRepo:   mocks.NewMockVoteRepository(ctrl),
		batchRepo:  mocks.NewMockBatchRepository(ctrl),
		executor:   mocks.NewMockSettlementExecutor(ctrl),
		params:     mocks.NewMockParamRepository(ctrl),
		recorder:   mocks.NewMockEventRecorder(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewOracleService(
		d.oracleRepo, d.voteRepo, d.batchRepo, d.executor,
		d.params, d.recorder, d.transactor, zerolog.Nop(),
	)
	return d
}

func oracleActor(id uuid.UUID) domain.Actor {
	return domain.Actor{ID: id, Kind: domain.AccountKindOracle}
}

func activeOracle(id uuid.UUID, stake int64) *domain.OracleRecord {
	return &domain.OracleRecord{
		Oracle:       id,
		IsRegistered: true,
		IsActive:     true,
		Stake:        stake,
		RegisteredAt: time.Now().UTC(),
	}
}

// ==================== Register Tests ====================

func TestOracleService_Register_Success(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx := &mockTx{}

	d.params.EXPECT().Get(ctx, domain.ParamPaused).Return(int64(0), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(nil, nil)
	d.oracleRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	rec, err := d.svc.Register(ctx, oracleActor(oracle), 2_000_000_000)
	require.NoError(t, err)
	assert.True(t, rec.IsRegistered)
	assert.True(t, rec.IsActive)
	assert.Equal(t, int64(2_000_000_000), rec.Stake)
}

func TestOracleService_Register_StakeBelowMinimum(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.params.EXPECT().Get(ctx, domain.ParamPaused).Return(int64(0), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)

	_, err := d.svc.Register(ctx, oracleActor(uuid.New()), 500_000_000)
	assertCode(t, err, "BAL_004")
}

func TestOracleService_Register_Duplicate(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx := &mockTx{}

	d.params.EXPECT().Get(ctx, domain.ParamPaused).Return(int64(0), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(activeOracle(oracle, 2_000_000_000), nil)

	_, err := d.svc.Register(ctx, oracleActor(oracle), 2_000_000_000)
	assertCode(t, err, "STA_006")
}

// Deregistration keeps the record, so an oracle can come back with a fresh
// stake later.
func TestOracleService_Register_AfterDeregister(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx := &mockTx{}
	rec := activeOracle(oracle, 0)
	rec.IsRegistered = false
	rec.IsActive = false
	rec.SlashCount = 2

	d.params.EXPECT().Get(ctx, domain.ParamPaused).Return(int64(0), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(rec, nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, rec).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	got, err := d.svc.Register(ctx, oracleActor(oracle), 3_000_000_000)
	require.NoError(t, err)
	assert.True(t, got.IsRegistered)
	assert.Equal(t, int64(3_000_000_000), got.Stake)
	assert.Equal(t, int64(2), got.SlashCount, "slash history survives re-registration")
}

// ==================== Vote Tests ====================

func voteFixture(t *testing.T, d *oracleTestDeps, ctx context.Context, oracle uuid.UUID, threshold int64) (*mockTx, *domain.Batch) {
	t.Helper()
	tx := &mockTx{}
	batch := pendingBatch(uuid.New(), []uuid.UUID{uuid.New()}, []int64{10_000_000})

	d.params.EXPECT().Get(ctx, domain.ParamPaused).Return(int64(0), nil)
	d.params.EXPECT().Get(ctx, domain.ParamApprovalThreshold).Return(threshold, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(activeOracle(oracle, 2_000_000_000), nil)
	d.batchRepo.EXPECT().Get(ctx, batch.ID).Return(batch, nil)
	return tx, batch
}

func TestOracleService_Vote_BelowThresholdAccumulates(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 2)

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).Return(&domain.BatchVoteRecord{BatchID: batch.ID}, nil)
	d.voteRepo.EXPECT().HasVoted(ctx, tx, batch.ID, oracle).Return(false, nil)
	d.voteRepo.EXPECT().RecordCast(ctx, tx, gomock.Any()).Return(nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.voteRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	votes, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteApprove, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), votes.ApprovalCount)
	assert.False(t, votes.Processed)
}

func TestOracleService_Vote_ApprovalThresholdFiresExecutor(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 2)

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).
		Return(&domain.BatchVoteRecord{BatchID: batch.ID, ApprovalCount: 1}, nil)
	d.voteRepo.EXPECT().HasVoted(ctx, tx, batch.ID, oracle).Return(false, nil)
	d.voteRepo.EXPECT().RecordCast(ctx, tx, gomock.Any()).Return(nil)
	approvedEv := &domain.Event{Type: domain.EventBatchApproved}
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.executor.EXPECT().ApproveTx(ctx, tx, batch.ID, gomock.Any()).
		Return(batch, []*domain.Event{approvedEv}, nil)
	d.voteRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any(), approvedEv)

	votes, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteApprove, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), votes.ApprovalCount)
	assert.True(t, votes.Processed)
}

func TestOracleService_Vote_RejectionThresholdFailsBatch(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 1)

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).Return(&domain.BatchVoteRecord{BatchID: batch.ID}, nil)
	d.voteRepo.EXPECT().HasVoted(ctx, tx, batch.ID, oracle).Return(false, nil)
	d.voteRepo.EXPECT().RecordCast(ctx, tx, gomock.Any()).Return(nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.executor.EXPECT().FailTx(ctx, tx, batch.ID, gomock.Any(), gomock.Any()).Return(batch, nil, nil)
	d.voteRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	votes, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteReject, "suspicious payees")
	require.NoError(t, err)
	assert.True(t, votes.Processed)
}

// A settlement failure inside the threshold step must propagate, rolling
// the whole vote back with it.
func TestOracleService_Vote_ExecutorFailurePropagates(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 1)

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).Return(&domain.BatchVoteRecord{BatchID: batch.ID}, nil)
	d.voteRepo.EXPECT().HasVoted(ctx, tx, batch.ID, oracle).Return(false, nil)
	d.voteRepo.EXPECT().RecordCast(ctx, tx, gomock.Any()).Return(nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.executor.EXPECT().ApproveTx(ctx, tx, batch.ID, gomock.Any()).
		Return(nil, nil, apperror.ErrApprovalWindowExpired())

	_, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteApprove, "")
	assertCode(t, err, "TIME_002")
}

func TestOracleService_Vote_DuplicateRejected(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 2)

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).Return(&domain.BatchVoteRecord{BatchID: batch.ID}, nil)
	d.voteRepo.EXPECT().HasVoted(ctx, tx, batch.ID, oracle).Return(true, nil)

	_, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteApprove, "")
	assertCode(t, err, "STA_002")
}

func TestOracleService_Vote_RoundAlreadyDecided(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 2)

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).
		Return(&domain.BatchVoteRecord{BatchID: batch.ID, ApprovalCount: 2, Processed: true}, nil)

	_, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteReject, "")
	assertCode(t, err, "STA_003")
}

// Once a round has been decided the batch has already left Pending. The
// caller must still see the round closure, not a status complaint.
func TestOracleService_Vote_DecidedRoundOnSettledBatch(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx, batch := voteFixture(t, d, ctx, oracle, 2)
	batch.Status = domain.BatchStatusProcessing

	d.voteRepo.EXPECT().GetOrCreateForUpdate(ctx, tx, batch.ID).
		Return(&domain.BatchVoteRecord{BatchID: batch.ID, ApprovalCount: 2, Processed: true}, nil)

	_, err := d.svc.Vote(ctx, oracleActor(oracle), batch.ID, domain.VoteApprove, "")
	assertCode(t, err, "STA_003")
}

func TestOracleService_Vote_InactiveOracle(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx := &mockTx{}
	rec := activeOracle(oracle, 2_000_000_000)
	rec.IsActive = false

	d.params.EXPECT().Get(ctx, domain.ParamPaused).Return(int64(0), nil)
	d.params.EXPECT().Get(ctx, domain.ParamApprovalThreshold).Return(int64(1), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(rec, nil)

	_, err := d.svc.Vote(ctx, oracleActor(oracle), uuid.New(), domain.VoteApprove, "")
	assertCode(t, err, "STA_007")
}

// ==================== SlashOracle Tests ====================

func TestOracleService_SlashOracle_DeactivatesBelowMinimum(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	slasher := domain.Actor{ID: uuid.New(), Roles: []domain.Role{domain.RoleSlasher}}
	tx := &mockTx{}

	d.params.EXPECT().Get(ctx, domain.ParamSlashAmount).Return(int64(100_000_000), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(activeOracle(oracle, 1_050_000_000), nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	rec, err := d.svc.SlashOracle(ctx, slasher, oracle, "missed votes")
	require.NoError(t, err)
	assert.Equal(t, int64(950_000_000), rec.Stake)
	assert.False(t, rec.IsActive)
	assert.Equal(t, int64(1), rec.SlashCount)
}

func TestOracleService_SlashOracle_StaysActiveAboveMinimum(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	slasher := domain.Actor{ID: uuid.New(), Roles: []domain.Role{domain.RoleSlasher}}
	tx := &mockTx{}

	d.params.EXPECT().Get(ctx, domain.ParamSlashAmount).Return(int64(100_000_000), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(activeOracle(oracle, 2_000_000_000), nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	rec, err := d.svc.SlashOracle(ctx, slasher, oracle, "late vote")
	require.NoError(t, err)
	assert.Equal(t, int64(1_900_000_000), rec.Stake)
	assert.True(t, rec.IsActive)
}

// A stake that cannot cover the slash amount is left untouched; partial
// slashes would let a drained oracle dodge the rest of the penalty.
func TestOracleService_SlashOracle_StakeBelowSlashAmount(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	slasher := domain.Actor{ID: uuid.New(), Roles: []domain.Role{domain.RoleSlasher}}
	tx := &mockTx{}
	rec := activeOracle(oracle, 40_000_000)

	d.params.EXPECT().Get(ctx, domain.ParamSlashAmount).Return(int64(100_000_000), nil)
	d.params.EXPECT().Get(ctx, domain.ParamMinimumStake).Return(int64(1_000_000_000), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(rec, nil)

	_, err := d.svc.SlashOracle(ctx, slasher, oracle, "missed votes")
	assertCode(t, err, "BAL_005")
	assert.Equal(t, int64(40_000_000), rec.Stake, "stake untouched on rejection")
	assert.Equal(t, int64(0), rec.SlashCount)
}

// ==================== Deregister Tests ====================

func TestOracleService_Deregister_ReleasesStake(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(activeOracle(oracle, 2_000_000_000), nil)
	d.oracleRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	rec, err := d.svc.Deregister(ctx, oracleActor(oracle))
	require.NoError(t, err)
	assert.False(t, rec.IsRegistered)
	assert.False(t, rec.IsActive)
	assert.Equal(t, int64(0), rec.Stake, "stake returns to zero on exit")
}

func TestOracleService_Deregister_NotRegistered(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	oracle := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().GetForUpdate(ctx, tx, oracle).Return(nil, nil)

	_, err := d.svc.Deregister(ctx, oracleActor(oracle))
	assertCode(t, err, "RES_001")
}

// ==================== Threshold Tests ====================

func TestOracleService_SetApprovalThreshold_ExceedsActiveCount(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := adminActor(uuid.New())
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().CountActive(ctx, tx).Return(int64(3), nil)

	err := d.svc.SetApprovalThreshold(ctx, admin, 5)
	assertCode(t, err, "VAL_008")
}

func TestOracleService_SetApprovalThreshold_Success(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := adminActor(uuid.New())
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.oracleRepo.EXPECT().CountActive(ctx, tx).Return(int64(5), nil)
	d.params.EXPECT().Set(ctx, tx, domain.ParamApprovalThreshold, int64(3)).Return(nil)
	d.recorder.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.recorder.EXPECT().Flush(ctx, gomock.Any())

	require.NoError(t, d.svc.SetApprovalThreshold(ctx, admin, 3))
}

func TestOracleService_SetApprovalThreshold_Zero(t *testing.T) {
	d := setupOracleService(t)
	defer d.ctrl.Finish()

	err := d.svc.SetApprovalThreshold(context.Background(), adminActor(uuid.New()), 0)
	assertCode(t, err, "VAL_008")
}
