package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "tata_pay", cfg.Database.DBName)
	assert.Equal(t, int64(10_000_000), cfg.Settlement.MinimumDeposit)
	assert.Equal(t, int64(1_000_000_000), cfg.Settlement.MinimumStake)
	assert.Equal(t, int64(100_000_000), cfg.Settlement.SlashAmount)
	assert.Equal(t, 24*time.Hour, cfg.Settlement.WithdrawalDelay)
	assert.Equal(t, 48*time.Hour, cfg.Settlement.SettlementTimeout)
	assert.Equal(t, 48*time.Hour, cfg.Governance.StandardDelay)
	assert.Equal(t, 6*time.Hour, cfg.Governance.ExpeditedDelay)
	assert.Equal(t, 7*24*time.Hour, cfg.Governance.ProposalLifetime)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
settlement:
  minimum_deposit: 5000000
  withdrawal_delay: 2h
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int64(5_000_000), cfg.Settlement.MinimumDeposit)
	assert.Equal(t, 2*time.Hour, cfg.Settlement.WithdrawalDelay)
	// Untouched keys keep defaults.
	assert.Equal(t, int64(100), cfg.Settlement.MaxBatchSize)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TATA_DATABASE_HOST", "db.internal")
	t.Setenv("TATA_SERVER_PORT", "7000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_WithdrawalDelayBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settlement:\n  withdrawal_delay: 30m\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err, "delay below 1h must be rejected")

	require.NoError(t, os.WriteFile(path, []byte("settlement:\n  withdrawal_delay: 200h\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err, "delay above 7d must be rejected")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		DBName: "tata_pay", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/tata_pay?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
