package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *WorkerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  max_reconnects: 5
  reconnect_wait: "5s"
  connection_name: "test-connection"
redis:
  addr: "localhost:6379"
  db: 2
ethereum:
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:1"
  contract_address: "0xcccccccccccccccccccccccccccccccccccccccc"
  start_block: 1000
  safe_confirmations: 10
  range_cap: 1999
  token_address: "0xdac17f958d2ee523a2206206994597c13d831ec7"
  currency: "USDT"
  token_decimals: 6
temporal:
  host_port: "temporal:7233"
  namespace: "reconciler"
verifier:
  delay: "45s"
  max_attempts: 5
`,
			expectError: false,
			validate: func(t *testing.T, cfg *WorkerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPCURL)
				assert.Equal(t, "eip155:1", string(cfg.Ethereum.ChainID))
				assert.Equal(t, uint64(1000), cfg.Ethereum.StartBlock)
				assert.Equal(t, uint64(10), cfg.Ethereum.SafeConfirmations)
				assert.Equal(t, uint64(1999), cfg.Ethereum.RangeCap)
				assert.Equal(t, "USDT", cfg.Ethereum.Currency)
				assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "reconciler", cfg.Temporal.Namespace)
				assert.Equal(t, 45*time.Second, cfg.Verifier.Delay)
				assert.Equal(t, int32(5), cfg.Verifier.MaxAttempts)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
ethereum:
  rpc_url: "http://localhost:8545"
  contract_address: "0xcccccccccccccccccccccccccccccccccccccccc"
  token_address: "0xdac17f958d2ee523a2206206994597c13d831ec7"
  currency: "USDT"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *WorkerConfig) {
				// Check defaults
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "eip155:1", string(cfg.Ethereum.ChainID))
				assert.Equal(t, uint64(12), cfg.Ethereum.SafeConfirmations)
				assert.Equal(t, uint64(1999), cfg.Ethereum.RangeCap)
				assert.Equal(t, 6, cfg.Ethereum.TokenDecimals)
				assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "donation-reconciliation", cfg.Temporal.TaskQueue)
				assert.Equal(t, 30*time.Second, cfg.Verifier.Delay)
				assert.Equal(t, 20*time.Second, cfg.Verifier.InitialInterval)
				assert.Equal(t, int32(8), cfg.Verifier.MaxAttempts)
				assert.Equal(t, 100, cfg.ReceiptAudit.BatchSize)
				assert.Equal(t, 24*time.Hour, cfg.ReceiptAudit.RecheckAfter)
				assert.Equal(t, 10, cfg.ReceiptAudit.Worker.PoolSize)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  user: testuser
  dbname: testdb
ethereum:
  rpc_url: "http://localhost:8545"
  contract_address: "0xcccccccccccccccccccccccccccccccccccccccc"
  token_address: "0xdac17f958d2ee523a2206206994597c13d831ec7"
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "missing contract address",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  rpc_url: "http://localhost:8545"
  token_address: "0xdac17f958d2ee523a2206206994597c13d831ec7"
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "unsupported chain",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  rpc_url: "http://localhost:8545"
  chain_id: "tezos:mainnet"
  contract_address: "0xcccccccccccccccccccccccccccccccccccccccc"
  token_address: "0xdac17f958d2ee523a2206206994597c13d831ec7"
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadWorkerConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadWorkerConfigFromEnv(t *testing.T) {
	t.Setenv("RECONCILER_DATABASE_HOST", "envhost")
	t.Setenv("RECONCILER_DATABASE_DBNAME", "envdb")
	t.Setenv("RECONCILER_ETHEREUM_RPC_URL", "http://env:8545")
	t.Setenv("RECONCILER_ETHEREUM_CONTRACT_ADDRESS", "0xcccccccccccccccccccccccccccccccccccccccc")
	t.Setenv("RECONCILER_ETHEREUM_TOKEN_ADDRESS", "0xdac17f958d2ee523a2206206994597c13d831ec7")
	t.Setenv("RECONCILER_ETHEREUM_SAFE_CONFIRMATIONS", "20")

	cfg, err := LoadWorkerConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "envdb", cfg.Database.DBName)
	assert.Equal(t, "http://env:8545", cfg.Ethereum.RPCURL)
	assert.Equal(t, uint64(20), cfg.Ethereum.SafeConfirmations)
}

func TestLoadSchedulerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadSchedulerConfig("", t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
		assert.Equal(t, "default", cfg.Temporal.Namespace)
		assert.Equal(t, "donation-reconciliation", cfg.Temporal.TaskQueue)
		assert.Equal(t, "*/30 * * * *", cfg.Temporal.SyncCronSchedule)
	})

	t.Run("config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		err := os.WriteFile(configFile, []byte(`
temporal:
  host_port: "temporal:7233"
  sync_cron_schedule: "*/5 * * * *"
`), 0600)
		require.NoError(t, err)

		cfg, err := LoadSchedulerConfig(configFile, "")
		require.NoError(t, err)
		assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
		assert.Equal(t, "*/5 * * * *", cfg.Temporal.SyncCronSchedule)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "reconciler",
		Password: "secret",
		DBName:   "donations",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=reconciler password=secret dbname=donations sslmode=disable",
		cfg.DSN())
}
