package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Network configuration
	Port string // HTTP API port

	// Database configuration
	Database DatabaseConfig

	// Blockchain configuration
	Chain ChainConfig

	// Storage configuration
	Storage StorageConfig

	// Redis configuration
	Redis RedisConfig

	// Risk assessor configuration
	Assessor AssessorConfig

	// Fraud analysis configuration
	Fraud FraudConfig

	// Verification link configuration
	Verify VerifyConfig
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Type         string // Database type: mysql, pebble
	Dsn          string // MySQL DSN
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
	DataDir      string // PebbleDB data directory
}

// ChainConfig contract gateway configuration
type ChainConfig struct {
	GatewayUrl     string // Contract gateway base URL
	ApiKey         string // Gateway API key (optional)
	Network        string // Chain network name shown in metadata documents
	ExplorerUrl    string // Block explorer base URL (for metadata links)
	TimeoutSeconds int    // Transaction wait timeout in seconds
}

// StorageConfig storage configuration
type StorageConfig struct {
	Type  string
	Local LocalStorageConfig
	OSS   OSSStorageConfig
	S3    S3StorageConfig
}

// LocalStorageConfig local storage configuration
type LocalStorageConfig struct {
	BasePath string
	Domain   string // Public base URL that serves the base path
}

// OSSStorageConfig OSS storage configuration
type OSSStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Domain    string
}

// S3StorageConfig AWS S3 storage configuration
type S3StorageConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Domain    string
	Endpoint  string // Optional custom endpoint
}

// RedisConfig redis configuration
type RedisConfig struct {
	Enabled  bool   // Enable Redis
	Host     string // Redis host
	Port     int    // Redis port
	Password string // Redis password (optional)
	DB       int    // Redis database number
}

// AssessorConfig LLM risk assessor configuration
type AssessorConfig struct {
	Enabled        bool   // Enable LLM assessor (fallback rules are used when disabled)
	ApiUrl         string // Chat completions endpoint
	ApiKey         string // API key
	Model          string // Model name
	TimeoutSeconds int    // Request timeout in seconds
}

// FraudConfig fraud analysis cache configuration
type FraudConfig struct {
	CacheBackend    string // memory or redis
	CacheTTLSeconds int    // Risk verdict TTL (default: 300)
	SweepSeconds    int    // Expired entry sweep interval, 0 disables the sweep
}

// VerifyConfig public verification link configuration
type VerifyConfig struct {
	BaseUrl string // Base URL of the consumer verification page
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Port: viper.GetString("port"),

		Database: DatabaseConfig{
			Type:         viper.GetString("database.type"),
			Dsn:          viper.GetString("database.dsn"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			DataDir:      viper.GetString("database.data_dir"),
		},

		Chain: ChainConfig{
			GatewayUrl:     viper.GetString("chain.gateway_url"),
			ApiKey:         viper.GetString("chain.api_key"),
			Network:        viper.GetString("chain.network"),
			ExplorerUrl:    viper.GetString("chain.explorer_url"),
			TimeoutSeconds: viper.GetInt("chain.timeout_seconds"),
		},

		Storage: StorageConfig{
			Type: viper.GetString("storage.type"),
			Local: LocalStorageConfig{
				BasePath: viper.GetString("storage.local.base_path"),
				Domain:   viper.GetString("storage.local.domain"),
			},
			OSS: OSSStorageConfig{
				Endpoint:  viper.GetString("storage.oss.endpoint"),
				AccessKey: viper.GetString("storage.oss.access_key"),
				SecretKey: viper.GetString("storage.oss.secret_key"),
				Bucket:    viper.GetString("storage.oss.bucket"),
				Domain:    viper.GetString("storage.oss.domain"),
			},
			S3: S3StorageConfig{
				Region:    viper.GetString("storage.s3.region"),
				AccessKey: viper.GetString("storage.s3.access_key"),
				SecretKey: viper.GetString("storage.s3.secret_key"),
				Bucket:    viper.GetString("storage.s3.bucket"),
				Domain:    viper.GetString("storage.s3.domain"),
				Endpoint:  viper.GetString("storage.s3.endpoint"),
			},
		},

		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},

		Assessor: AssessorConfig{
			Enabled:        viper.GetBool("assessor.enabled"),
			ApiUrl:         viper.GetString("assessor.api_url"),
			ApiKey:         viper.GetString("assessor.api_key"),
			Model:          viper.GetString("assessor.model"),
			TimeoutSeconds: viper.GetInt("assessor.timeout_seconds"),
		},

		Fraud: FraudConfig{
			CacheBackend:    viper.GetString("fraud.cache_backend"),
			CacheTTLSeconds: viper.GetInt("fraud.cache_ttl_seconds"),
			SweepSeconds:    viper.GetInt("fraud.sweep_seconds"),
		},

		Verify: VerifyConfig{
			BaseUrl: viper.GetString("verify.base_url"),
		},
	}

	// Set default values
	if Cfg.Port == "" {
		Cfg.Port = "7291"
	}
	if Cfg.Database.Type == "" {
		Cfg.Database.Type = "mysql"
	}
	if Cfg.Database.MaxOpenConns == 0 {
		Cfg.Database.MaxOpenConns = 100
	}
	if Cfg.Database.MaxIdleConns == 0 {
		Cfg.Database.MaxIdleConns = 10
	}
	if Cfg.Storage.Type == "" {
		Cfg.Storage.Type = "local"
	}
	if Cfg.Storage.Local.BasePath == "" {
		Cfg.Storage.Local.BasePath = "./data/files"
	}
	if Cfg.Chain.TimeoutSeconds == 0 {
		Cfg.Chain.TimeoutSeconds = 60
	}
	if Cfg.Chain.Network == "" {
		Cfg.Chain.Network = "mainnet"
	}
	if Cfg.Assessor.TimeoutSeconds == 0 {
		Cfg.Assessor.TimeoutSeconds = 20
	}
	if Cfg.Assessor.Model == "" {
		Cfg.Assessor.Model = "gpt-4o-mini"
	}
	if Cfg.Fraud.CacheBackend == "" {
		Cfg.Fraud.CacheBackend = "memory"
	}
	if Cfg.Fraud.CacheTTLSeconds == 0 {
		Cfg.Fraud.CacheTTLSeconds = 300
	}

	return nil
}
