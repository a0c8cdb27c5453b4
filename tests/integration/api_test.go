package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelarogbonlo/tata-pay/config"
	httpHandler "github.com/samuelarogbonlo/tata-pay/internal/adapter/http/handler"
	redisStorage "github.com/samuelarogbonlo/tata-pay/internal/adapter/storage/redis"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/internal/service"
	"github.com/samuelarogbonlo/tata-pay/pkg/logger"
)

// testApp builds the full application stack over in-memory storage: miniredis
// for the Redis stores and the fakes from inmemory_repos.go for postgres.
// This exercises the real HTTP layer, middleware, handlers, and services
// end-to-end.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
	params *inMemoryParamRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	// In-memory repos
	accountRepo := newInMemoryAccountRepo()
	roleRepo := newInMemoryRoleRepo()
	collateralRepo := newInMemoryCollateralRepo()
	withdrawalRepo := newInMemoryWithdrawalRepo()
	batchRepo := newInMemoryBatchRepo()
	oracleRepo := newInMemoryOracleRepo()
	voteRepo := newInMemoryVoteRepo()
	eventRepo := newInMemoryEventRepo()
	paramRepo := newInMemoryParamRepo()
	proposalRepo := newInMemoryProposalRepo()
	fraudLimitRepo := newInMemoryFraudLimitRepo()
	transactor := newInMemoryTransactor()

	// Runtime parameters the services read on every call. The withdrawal
	// delay sits at its lower bound so the delay-not-elapsed path is testable.
	seeds := map[string]int64{
		domain.ParamMinimumDeposit:        1_000_000,
		domain.ParamMinimumStake:          5_000_000,
		domain.ParamSlashAmount:           500_000,
		domain.ParamMaxBatchSize:          100,
		domain.ParamApprovalThreshold:     1,
		domain.ParamWithdrawalDelaySecs:   3600,
		domain.ParamSettlementTimeoutSecs: 86400,
		domain.ParamPaused:                0,
	}
	for k, v := range seeds {
		require.NoError(t, paramRepo.Seed(ctx, k, v))
	}

	// Redis stores
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	velocityStore := redisStorage.NewVelocityStore(rdb)

	log := logger.New("error", false)
	publisher := redisStorage.NewEventPublisher(rdb, log)
	recorder := service.NewEventRecorder(eventRepo, publisher, log)

	// Core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "tata-pay-test")
	authSvc := service.NewAuthService(accountRepo, roleRepo, hashSvc, tokenSvc)
	ledgerSvc := service.NewLedgerService(collateralRepo, withdrawalRepo, paramRepo, recorder, transactor, log)
	settlementSvc := service.NewSettlementService(batchRepo, ledgerSvc, paramRepo, recorder, transactor, log)
	oracleSvc := service.NewOracleService(oracleRepo, voteRepo, batchRepo, settlementSvc, paramRepo, recorder, transactor, log)
	govCfg := config.GovernanceConfig{
		Threshold:        1,
		StandardDelay:    0,
		ExpeditedDelay:   0,
		ProposalLifetime: 24 * time.Hour,
	}
	governanceSvc := service.NewGovernanceService(proposalRepo, roleRepo, oracleRepo, paramRepo, recorder, transactor, govCfg, log)
	fraudCfg := config.FraudConfig{
		HourlyMaxCount:  1_000,
		HourlyMaxAmount: 1_000_000_000_000,
		DailyMaxCount:   10_000,
		DailyMaxAmount:  10_000_000_000_000,
	}
	fraudSvc := service.NewFraudService(fraudLimitRepo, velocityStore, fraudCfg, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		LedgerSvc:      ledgerSvc,
		SettlementSvc:  settlementSvc,
		OracleSvc:      oracleSvc,
		GovernanceSvc:  governanceSvc,
		FraudSvc:       fraudSvc,
		EventRepo:      eventRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	return &testApp{
		server: httptest.NewServer(router),
		redis:  mr,
		params: paramRepo,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// request sends a JSON request and decodes the response envelope.
func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.server.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp.StatusCode, envelope
}

func payload(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope: %v", envelope)
	return d
}

func errorCode(envelope map[string]interface{}) string {
	code, _ := envelope["error_code"].(string)
	return code
}

// registerAccount creates an account of the given kind and logs it in,
// returning the account id and a bearer token.
func (a *testApp) registerAccount(t *testing.T, username, kind string) (string, string) {
	t.Helper()

	status, env := a.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"password": "StrongPass123",
		"kind":     kind,
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", username, env)
	id := payload(t, env)["account_id"].(string)

	status, env = a.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "StrongPass123",
	})
	require.Equal(t, http.StatusOK, status)
	return id, payload(t, env)["token"].(string)
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	status, env := app.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"password": "StrongPass123",
		"kind":     "PRINCIPAL",
	})
	require.Equal(t, http.StatusCreated, status)
	data := payload(t, env)
	assert.NotEmpty(t, data["account_id"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "PRINCIPAL", data["kind"])

	status, env = app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "StrongPass123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, payload(t, env)["token"])
}

func TestIntegration_DuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body := map[string]string{
		"username": "alice",
		"password": "StrongPass123",
		"kind":     "PRINCIPAL",
	}
	status, _ := app.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status)

	status, env := app.request(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "AUTH_004", errorCode(env))
}

func TestIntegration_LoginWrongCredentials(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	status, env := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "WrongPass123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_001", errorCode(env))
}

func TestIntegration_UnauthenticatedRequest(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	status, env := app.request(t, http.MethodGet, "/api/v1/batches", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_002", errorCode(env))
}

func TestIntegration_CollateralLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	principalID, token := app.registerAccount(t, "principal1", "PRINCIPAL")

	// Below the minimum deposit
	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", token,
		map[string]int64{"amount": 500_000})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAL_003", errorCode(env))

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/deposit", token,
		map[string]int64{"amount": 5_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)
	data := payload(t, env)
	assert.Equal(t, float64(5_000_000), data["total_deposited"])
	assert.Equal(t, float64(5_000_000), data["available"])
	assert.Equal(t, float64(0), data["locked"])

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5_000_000), payload(t, env)["available"])

	// More than available
	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/withdrawals", token,
		map[string]int64{"amount": 10_000_000})
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "BAL_001", errorCode(env))

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/withdrawals", token,
		map[string]int64{"amount": 1_000_000})
	require.Equal(t, http.StatusCreated, status, "request withdrawal: %v", env)
	data = payload(t, env)
	assert.Equal(t, float64(1_000_000), data["amount"])
	assert.Equal(t, false, data["executed"])

	// Only one live request per principal
	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/withdrawals", token,
		map[string]int64{"amount": 200_000})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STA_008", errorCode(env))

	// The delay has not elapsed
	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/withdrawals/execute", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "TIME_001", errorCode(env))

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID+"/withdrawal", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1_000_000), payload(t, env)["amount"])

	status, env = app.request(t, http.MethodDelete, "/api/v1/collateral/withdrawals", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload(t, env)["cancelled"])

	// Nothing left to cancel
	status, env = app.request(t, http.MethodDelete, "/api/v1/collateral/withdrawals", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STA_009", errorCode(env))
}

func TestIntegration_BatchSettlementLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	principalID, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeID, payeeToken := app.registerAccount(t, "payee1", "PAYEE")
	_, oracleToken := app.registerAccount(t, "oracle1", "ORACLE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 2_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches", principalToken, map[string]interface{}{
		"payees":  []string{payeeID},
		"amounts": []int64{750_000},
	})
	require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	data := payload(t, env)
	batchID := data["id"].(string)
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, float64(750_000), data["total_amount"])

	// Creation locked the batch total
	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data = payload(t, env)
	assert.Equal(t, float64(750_000), data["locked"])
	assert.Equal(t, float64(1_250_000), data["available"])

	status, env = app.request(t, http.MethodPost, "/api/v1/oracles/register", oracleToken,
		map[string]int64{"stake": 5_000_000})
	require.Equal(t, http.StatusCreated, status, "register oracle: %v", env)
	assert.Equal(t, true, payload(t, env)["is_active"])

	// The single approval meets the threshold and processes the batch
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/votes", oracleToken,
		map[string]string{"kind": "APPROVE"})
	require.Equal(t, http.StatusOK, status, "vote: %v", env)
	data = payload(t, env)
	assert.Equal(t, float64(1), data["approval_count"])
	assert.Equal(t, true, data["processed"])

	status, env = app.request(t, http.MethodGet, "/api/v1/batches/"+batchID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PROCESSING", payload(t, env)["status"])

	// Last claim completes the batch
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/claim", payeeToken, nil)
	require.Equal(t, http.StatusOK, status, "claim: %v", env)
	data = payload(t, env)
	assert.Equal(t, "COMPLETED", data["status"])
	assert.Equal(t, float64(1), data["claimed_count"])
	assert.Equal(t, float64(750_000), data["claimed_total"])

	// A paid claim leaves the ledger entirely
	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data = payload(t, env)
	assert.Equal(t, float64(0), data["locked"])
	assert.Equal(t, float64(1_250_000), data["available"])
	assert.Equal(t, float64(1_250_000), data["total_deposited"])

	// Claiming twice is rejected
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/claim", payeeToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STA_001", errorCode(env))
}

func TestIntegration_BatchCancelReturnsCollateral(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	principalID, token := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeID, _ := app.registerAccount(t, "payee1", "PAYEE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", token,
		map[string]int64{"amount": 2_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches", token, map[string]interface{}{
		"payees":  []string{payeeID},
		"amounts": []int64{600_000},
	})
	require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	batchID := payload(t, env)["id"].(string)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, status, "cancel: %v", env)
	assert.Equal(t, "FAILED", payload(t, env)["status"])

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, token, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload(t, env)
	assert.Equal(t, float64(0), data["locked"])
	assert.Equal(t, float64(2_000_000), data["available"])
	assert.Equal(t, float64(2_000_000), data["total_deposited"])
}

func TestIntegration_OracleRejectFailsBatch(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	principalID, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeID, _ := app.registerAccount(t, "payee1", "PAYEE")
	_, oracleToken := app.registerAccount(t, "oracle1", "ORACLE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 3_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches", principalToken, map[string]interface{}{
		"payees":  []string{payeeID},
		"amounts": []int64{1_000_000},
	})
	require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	batchID := payload(t, env)["id"].(string)

	status, env = app.request(t, http.MethodPost, "/api/v1/oracles/register", oracleToken,
		map[string]int64{"stake": 5_000_000})
	require.Equal(t, http.StatusCreated, status, "register oracle: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/votes", oracleToken,
		map[string]string{"kind": "REJECT", "reason": "payee mismatch"})
	require.Equal(t, http.StatusOK, status, "vote: %v", env)
	assert.Equal(t, true, payload(t, env)["processed"])

	status, env = app.request(t, http.MethodGet, "/api/v1/batches/"+batchID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "FAILED", payload(t, env)["status"])

	// Rejection unlocked the full batch total
	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload(t, env)
	assert.Equal(t, float64(0), data["locked"])
	assert.Equal(t, float64(3_000_000), data["available"])

	// The round is settled; further votes are rejected
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/votes", oracleToken,
		map[string]string{"kind": "APPROVE"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STA_003", errorCode(env))
}

func TestIntegration_GovernanceSetParamAndPause(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, adminToken := app.registerAccount(t, "admin1", "ADMIN")
	_, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")

	execute := func(kind string, proposalPayload interface{}) {
		t.Helper()
		body := map[string]interface{}{"kind": kind}
		if proposalPayload != nil {
			body["payload"] = proposalPayload
		}
		status, env := app.request(t, http.MethodPost, "/api/v1/governance/proposals", adminToken, body)
		require.Equal(t, http.StatusCreated, status, "propose %s: %v", kind, env)
		proposalID := payload(t, env)["id"].(string)

		status, env = app.request(t, http.MethodPost, "/api/v1/governance/proposals/"+proposalID+"/execute", adminToken, nil)
		require.Equal(t, http.StatusOK, status, "execute %s: %v", kind, env)
		assert.Equal(t, "EXECUTED", payload(t, env)["status"])
	}

	// Raise the deposit floor
	execute("SET_PARAM", map[string]interface{}{"key": "minimum_deposit", "value": 2_000_000})

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 1_500_000})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAL_003", errorCode(env))

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 2_500_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	// Pause halts ledger mutations
	execute("PAUSE", nil)

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 2_500_000})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "STA_010", errorCode(env))

	execute("UNPAUSE", nil)

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 2_500_000})
	require.Equal(t, http.StatusOK, status, "deposit after unpause: %v", env)
	assert.Equal(t, float64(5_000_000), payload(t, env)["total_deposited"])
}

func TestIntegration_GovernanceRequiresAdmin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")

	status, env := app.request(t, http.MethodPost, "/api/v1/governance/proposals", principalToken,
		map[string]interface{}{"kind": "PAUSE"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTH_003", errorCode(env))
}

func TestIntegration_FraudBlacklistBlocksBatch(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	adminID, adminToken := app.registerAccount(t, "admin1", "ADMIN")
	principalID, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeID, _ := app.registerAccount(t, "payee1", "PAYEE")

	// Grant the fraud management role to the admin via governance
	status, env := app.request(t, http.MethodPost, "/api/v1/governance/proposals", adminToken, map[string]interface{}{
		"kind":    "GRANT_ROLE",
		"payload": map[string]string{"account_id": adminID, "role": "fraud-caller"},
	})
	require.Equal(t, http.StatusCreated, status, "propose grant: %v", env)
	proposalID := payload(t, env)["id"].(string)

	status, env = app.request(t, http.MethodPost, "/api/v1/governance/proposals/"+proposalID+"/execute", adminToken, nil)
	require.Equal(t, http.StatusOK, status, "execute grant: %v", env)

	status, env = app.request(t, http.MethodPut, "/api/v1/fraud/limits", adminToken, map[string]interface{}{
		"principal":   principalID,
		"list_status": "BLACKLISTED",
	})
	require.Equal(t, http.StatusOK, status, "set limit: %v", env)
	assert.Equal(t, "BLACKLISTED", payload(t, env)["list_status"])

	status, env = app.request(t, http.MethodGet, "/api/v1/fraud/limits/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "BLACKLISTED", payload(t, env)["list_status"])

	// Deposits still work; batch creation passes through the fraud gate
	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 5_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches", principalToken, map[string]interface{}{
		"payees":  []string{payeeID},
		"amounts": []int64{1_000_000},
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FRD_001", errorCode(env))
}

func TestIntegration_BatchListAndEvents(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, token := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeID, _ := app.registerAccount(t, "payee1", "PAYEE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", token,
		map[string]int64{"amount": 5_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	for i := 0; i < 2; i++ {
		status, env = app.request(t, http.MethodPost, "/api/v1/batches", token, map[string]interface{}{
			"payees":  []string{payeeID},
			"amounts": []int64{500_000},
		})
		require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	}
	batchID := payload(t, env)["id"].(string)

	status, env = app.request(t, http.MethodGet, "/api/v1/batches", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload(t, env)
	assert.Equal(t, float64(2), data["count"])
	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	// Newest first
	first := items[0].(map[string]interface{})
	assert.Equal(t, batchID, first["id"])

	status, env = app.request(t, http.MethodGet, "/api/v1/batches/"+batchID+"/events", token, nil)
	require.Equal(t, http.StatusOK, status)
	events := payload(t, env)["items"].([]interface{})
	require.NotEmpty(t, events)
	ev := events[0].(map[string]interface{})
	assert.Equal(t, "batch", ev["entity_type"])
	assert.Equal(t, batchID, ev["entity_id"])
}

func TestIntegration_PartialClaimsCompleteBatch(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	principalID, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeAID, payeeAToken := app.registerAccount(t, "payee_a", "PAYEE")
	payeeBID, payeeBToken := app.registerAccount(t, "payee_b", "PAYEE")
	_, oracleToken := app.registerAccount(t, "oracle1", "ORACLE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 10_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches", principalToken, map[string]interface{}{
		"payees":  []string{payeeAID, payeeBID},
		"amounts": []int64{1_000_000, 2_000_000},
	})
	require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	batchID := payload(t, env)["id"].(string)

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload(t, env)
	assert.Equal(t, float64(7_000_000), data["available"])
	assert.Equal(t, float64(3_000_000), data["locked"])

	status, env = app.request(t, http.MethodPost, "/api/v1/oracles/register", oracleToken,
		map[string]int64{"stake": 5_000_000})
	require.Equal(t, http.StatusCreated, status, "register oracle: %v", env)
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/votes", oracleToken,
		map[string]string{"kind": "APPROVE"})
	require.Equal(t, http.StatusOK, status, "vote: %v", env)

	// First claim leaves the batch in flight
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/claim", payeeAToken, nil)
	require.Equal(t, http.StatusOK, status, "claim A: %v", env)
	assert.Equal(t, "PROCESSING", payload(t, env)["status"])

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2_000_000), payload(t, env)["locked"])

	// Last claim completes it
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/claim", payeeBToken, nil)
	require.Equal(t, http.StatusOK, status, "claim B: %v", env)
	data = payload(t, env)
	assert.Equal(t, "COMPLETED", data["status"])
	assert.Equal(t, float64(2), data["claimed_count"])

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data = payload(t, env)
	assert.Equal(t, float64(0), data["locked"])
	assert.Equal(t, float64(7_000_000), data["available"])
	assert.Equal(t, float64(7_000_000), data["total_deposited"])
}

func TestIntegration_FailRefundsUnclaimedRemainder(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	adminID, adminToken := app.registerAccount(t, "admin1", "ADMIN")
	principalID, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeAID, payeeAToken := app.registerAccount(t, "payee_a", "PAYEE")
	_, oracleToken := app.registerAccount(t, "oracle1", "ORACLE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 10_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	// Payees B and C never claim; placeholder ids suffice
	status, env = app.request(t, http.MethodPost, "/api/v1/batches", principalToken, map[string]interface{}{
		"payees":  []string{payeeAID, uuid.NewString(), uuid.NewString()},
		"amounts": []int64{1_000_000, 2_000_000, 3_000_000},
	})
	require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	batchID := payload(t, env)["id"].(string)

	status, env = app.request(t, http.MethodPost, "/api/v1/oracles/register", oracleToken,
		map[string]int64{"stake": 5_000_000})
	require.Equal(t, http.StatusCreated, status, "register oracle: %v", env)
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/votes", oracleToken,
		map[string]string{"kind": "APPROVE"})
	require.Equal(t, http.StatusOK, status, "vote: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/claim", payeeAToken, nil)
	require.Equal(t, http.StatusOK, status, "claim A: %v", env)

	// Failing a batch needs the oracle-caller (or fraud-caller) role
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/fail", adminToken,
		map[string]string{"reason": "payee dispute"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTH_003", errorCode(env))

	status, env = app.request(t, http.MethodPost, "/api/v1/governance/proposals", adminToken, map[string]interface{}{
		"kind":    "GRANT_ROLE",
		"payload": map[string]string{"account_id": adminID, "role": "oracle-caller"},
	})
	require.Equal(t, http.StatusCreated, status, "propose grant: %v", env)
	proposalID := payload(t, env)["id"].(string)
	status, env = app.request(t, http.MethodPost, "/api/v1/governance/proposals/"+proposalID+"/execute", adminToken, nil)
	require.Equal(t, http.StatusOK, status, "execute grant: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/fail", adminToken,
		map[string]string{"reason": "payee dispute"})
	require.Equal(t, http.StatusOK, status, "fail: %v", env)
	data := payload(t, env)
	assert.Equal(t, "FAILED", data["status"])
	assert.Equal(t, float64(1), data["claimed_count"])

	// Only the unclaimed 5,000,000 comes back; the paid claim stays out
	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data = payload(t, env)
	assert.Equal(t, float64(0), data["locked"])
	assert.Equal(t, float64(9_000_000), data["available"])
	assert.Equal(t, float64(9_000_000), data["total_deposited"])
}

func TestIntegration_BatchTimeout(t *testing.T) {
	app := newTestApp(t)
	defer app.close()
	ctx := context.Background()

	principalID, principalToken := app.registerAccount(t, "principal1", "PRINCIPAL")
	payeeID, payeeToken := app.registerAccount(t, "payee1", "PAYEE")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", principalToken,
		map[string]int64{"amount": 2_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/batches", principalToken, map[string]interface{}{
		"payees":  []string{payeeID},
		"amounts": []int64{800_000},
	})
	require.Equal(t, http.StatusCreated, status, "create batch: %v", env)
	batchID := payload(t, env)["id"].(string)

	// Window still open
	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/timeout", payeeToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "TIME_003", errorCode(env))

	// Collapse the window; any authenticated caller may fire the timeout
	require.NoError(t, app.params.Set(ctx, nil, domain.ParamSettlementTimeoutSecs, 0))

	status, env = app.request(t, http.MethodPost, "/api/v1/batches/"+batchID+"/timeout", payeeToken, nil)
	require.Equal(t, http.StatusOK, status, "timeout: %v", env)
	assert.Equal(t, "TIMED_OUT", payload(t, env)["status"])

	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, principalToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload(t, env)
	assert.Equal(t, float64(0), data["locked"])
	assert.Equal(t, float64(2_000_000), data["available"])
}

func TestIntegration_OracleSlashAutoDeactivates(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	adminID, adminToken := app.registerAccount(t, "admin1", "ADMIN")
	oracleID, oracleToken := app.registerAccount(t, "oracle1", "ORACLE")

	// Stake exactly at the minimum
	status, env := app.request(t, http.MethodPost, "/api/v1/oracles/register", oracleToken,
		map[string]int64{"stake": 5_000_000})
	require.Equal(t, http.StatusCreated, status, "register oracle: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/governance/proposals", adminToken, map[string]interface{}{
		"kind":    "GRANT_ROLE",
		"payload": map[string]string{"account_id": adminID, "role": "slasher"},
	})
	require.Equal(t, http.StatusCreated, status, "propose grant: %v", env)
	proposalID := payload(t, env)["id"].(string)
	status, env = app.request(t, http.MethodPost, "/api/v1/governance/proposals/"+proposalID+"/execute", adminToken, nil)
	require.Equal(t, http.StatusOK, status, "execute grant: %v", env)

	// One slash drops the stake below the minimum and deactivates the oracle
	status, env = app.request(t, http.MethodPost, "/api/v1/oracles/"+oracleID+"/slash", adminToken,
		map[string]string{"reason": "missed vote round"})
	require.Equal(t, http.StatusOK, status, "slash: %v", env)
	data := payload(t, env)
	assert.Equal(t, float64(4_500_000), data["stake"])
	assert.Equal(t, false, data["is_active"])
	assert.Equal(t, float64(1), data["slash_count"])
}

func TestIntegration_WithdrawalRoundTrip(t *testing.T) {
	app := newTestApp(t)
	defer app.close()
	ctx := context.Background()

	principalID, token := app.registerAccount(t, "principal1", "PRINCIPAL")

	status, env := app.request(t, http.MethodPost, "/api/v1/collateral/deposit", token,
		map[string]int64{"amount": 5_000_000})
	require.Equal(t, http.StatusOK, status, "deposit: %v", env)

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/withdrawals", token,
		map[string]int64{"amount": 2_000_000})
	require.Equal(t, http.StatusCreated, status, "request: %v", env)

	// Collapse the delay so the request matures immediately
	require.NoError(t, app.params.Set(ctx, nil, domain.ParamWithdrawalDelaySecs, 0))

	status, env = app.request(t, http.MethodPost, "/api/v1/collateral/withdrawals/execute", token, nil)
	require.Equal(t, http.StatusOK, status, "execute: %v", env)
	data := payload(t, env)
	assert.Equal(t, float64(3_000_000), data["available"])
	assert.Equal(t, float64(2_000_000), data["total_withdrawn"])
	assert.Equal(t, float64(5_000_000), data["total_deposited"])

	// Buckets still reconcile
	status, env = app.request(t, http.MethodGet, "/api/v1/collateral/accounts/"+principalID, token, nil)
	require.Equal(t, http.StatusOK, status)
	data = payload(t, env)
	total := data["available"].(float64) + data["locked"].(float64) +
		data["total_withdrawn"].(float64) + data["total_slashed"].(float64)
	assert.Equal(t, data["total_deposited"], total)
}
