package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Governance GovernanceConfig `mapstructure:"governance"`
	Fraud      FraudConfig      `mapstructure:"fraud"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// SettlementConfig carries bootstrap values for the settlement parameters.
// They seed the params table on first start; after that, governance is the
// sole writer and these values are ignored.
type SettlementConfig struct {
	MinimumDeposit    int64         `mapstructure:"minimum_deposit"`    // micro-units
	MinimumStake      int64         `mapstructure:"minimum_stake"`      // micro-units
	SlashAmount       int64         `mapstructure:"slash_amount"`       // micro-units, default 10% of minimum stake
	MaxBatchSize      int64         `mapstructure:"max_batch_size"`     // payments per batch
	ApprovalThreshold int64         `mapstructure:"approval_threshold"` // oracle votes to decide a batch
	WithdrawalDelay   time.Duration `mapstructure:"withdrawal_delay"`   // must stay within [1h, 7d]
	SettlementTimeout time.Duration `mapstructure:"settlement_timeout"`
}

type GovernanceConfig struct {
	Threshold        int64         `mapstructure:"threshold"` // admin approvals per proposal
	StandardDelay    time.Duration `mapstructure:"standard_delay"`
	ExpeditedDelay   time.Duration `mapstructure:"expedited_delay"`
	ProposalLifetime time.Duration `mapstructure:"proposal_lifetime"`
}

// FraudConfig holds the default velocity windows. Per-principal overrides
// live in the fraud_limits table.
type FraudConfig struct {
	HourlyMaxCount  int64 `mapstructure:"hourly_max_count"`
	HourlyMaxAmount int64 `mapstructure:"hourly_max_amount"` // micro-units
	DailyMaxCount   int64 `mapstructure:"daily_max_count"`
	DailyMaxAmount  int64 `mapstructure:"daily_max_amount"` // micro-units
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TATA.
// Nested keys use underscore: TATA_DATABASE_HOST, TATA_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "tata_pay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "tata-pay")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Settlement asset uses 6 decimal places; 1 unit = 1_000_000 micro-units.
	v.SetDefault("settlement.minimum_deposit", 10_000_000)
	v.SetDefault("settlement.minimum_stake", 1_000_000_000)
	v.SetDefault("settlement.slash_amount", 100_000_000)
	v.SetDefault("settlement.max_batch_size", 100)
	v.SetDefault("settlement.approval_threshold", 1)
	v.SetDefault("settlement.withdrawal_delay", "24h")
	v.SetDefault("settlement.settlement_timeout", "48h")

	v.SetDefault("governance.threshold", 1)
	v.SetDefault("governance.standard_delay", "48h")
	v.SetDefault("governance.expedited_delay", "6h")
	v.SetDefault("governance.proposal_lifetime", "168h")

	v.SetDefault("fraud.hourly_max_count", 100)
	v.SetDefault("fraud.hourly_max_amount", 100_000_000_000)
	v.SetDefault("fraud.daily_max_count", 1000)
	v.SetDefault("fraud.daily_max_amount", 1_000_000_000_000)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TATA_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

const (
	withdrawalDelayMin = time.Hour
	withdrawalDelayMax = 7 * 24 * time.Hour
)

func (c *Config) validate() error {
	if c.Settlement.WithdrawalDelay < withdrawalDelayMin || c.Settlement.WithdrawalDelay > withdrawalDelayMax {
		return fmt.Errorf("settlement.withdrawal_delay %s outside [1h, 168h]", c.Settlement.WithdrawalDelay)
	}
	if c.Settlement.MinimumDeposit <= 0 || c.Settlement.MinimumStake <= 0 {
		return fmt.Errorf("settlement minimums must be positive")
	}
	if c.Settlement.MaxBatchSize <= 0 {
		return fmt.Errorf("settlement.max_batch_size must be positive")
	}
	if c.Settlement.ApprovalThreshold <= 0 {
		return fmt.Errorf("settlement.approval_threshold must be positive")
	}
	return nil
}
