package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig          `mapstructure:"server"`
	Database       DatabaseConfig        `mapstructure:"database"`
	Mongo          MongoConfig           `mapstructure:"mongo"`
	Redis          RedisConfig           `mapstructure:"redis"`
	Kafka          KafkaConfig           `mapstructure:"kafka"`
	JWT            JWTConfig             `mapstructure:"jwt"`
	Confidential   ConfidentialConfig    `mapstructure:"confidential"`
	Log            LogConfig             `mapstructure:"log"`
	Nodo           NodoConfig            `mapstructure:"nodo"`
	Gateways       GatewaysConfig        `mapstructure:"gateways"`
	Redirect       RedirectConfig        `mapstructure:"redirect"`
	PaymentMethods []PaymentMethodConfig `mapstructure:"payment_methods"`
	RateLimit      RateLimitConfig       `mapstructure:"rate_limit"`
	TokenRetry     RetryConfig           `mapstructure:"token_retry"`
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

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ViewCollection string        `mapstructure:"view_collection"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Host                  string        `mapstructure:"host"`
	Port                  int           `mapstructure:"port"`
	Password              string        `mapstructure:"password"`
	DB                    int           `mapstructure:"db"`
	ClientName            string        `mapstructure:"client_name"`
	PoolSize              int           `mapstructure:"pool_size"`
	DialTimeout           time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout           time.Duration `mapstructure:"read_timeout"`
	PaymentRequestInfoTTL time.Duration `mapstructure:"payment_request_info_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers                []string      `mapstructure:"brokers"`
	ClosureRetryTopic      string        `mapstructure:"closure_retry_topic"`
	NotificationRetryTopic string        `mapstructure:"notification_retry_topic"`
	ConsumerGroup          string        `mapstructure:"consumer_group"`
	MaxClosureAttempts     int           `mapstructure:"max_closure_attempts"`
	RetryDelay             time.Duration `mapstructure:"retry_delay"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type ConfidentialConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// NodoConfig addresses the payment hub.
type NodoConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	PSPFiscalCode       string        `mapstructure:"psp_fiscal_code"`
	IDPSP               string        `mapstructure:"id_psp"`
	IDBrokerPSP         string        `mapstructure:"id_broker_psp"`
	IDChannel           string        `mapstructure:"id_channel"`
	PaymentTokenTimeout time.Duration `mapstructure:"payment_token_timeout"`
	ConnectTimeout      time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout         time.Duration `mapstructure:"read_timeout"`
}

type GatewaysConfig struct {
	PGSBaseURL      string        `mapstructure:"pgs_base_url"`
	NPGBaseURL      string        `mapstructure:"npg_base_url"`
	NPGAPIKey       string        `mapstructure:"npg_api_key"`
	NPGResultURL    string        `mapstructure:"npg_result_url"`
	NPGNotifyURL    string        `mapstructure:"npg_notify_url"`
	NPGCancelURL    string        `mapstructure:"npg_cancel_url"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	SessionAttempts int           `mapstructure:"session_attempts"`
	SessionDelay    time.Duration `mapstructure:"session_delay"`
}

// RedirectPSPConfig is one redirect-style PSP. All fields are mandatory.
// Lists are used instead of maps because viper lowercases map keys.
type RedirectPSPConfig struct {
	PSPID  string `mapstructure:"psp_id"`
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
	Logo   string `mapstructure:"logo"`
}

type RedirectConfig struct {
	ReturnURL      string              `mapstructure:"return_url"`
	ConnectTimeout time.Duration       `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration       `mapstructure:"read_timeout"`
	PSPs           []RedirectPSPConfig `mapstructure:"psps"`
}

type PaymentMethodConfig struct {
	ID              string `mapstructure:"id"`
	Name            string `mapstructure:"name"`
	PaymentTypeCode string `mapstructure:"payment_type_code"`
	Enabled         bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ECT_ (eCommerce Transactions).
// Nested keys use underscore: ECT_DATABASE_HOST, ECT_NODO_BASE_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "ecommerce")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "ecommerce")
	v.SetDefault("mongo.view_collection", "transactions-view")
	v.SetDefault("mongo.timeout", "5s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.client_name", "ecommerce-transactions")
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.dial_timeout", "2s")
	v.SetDefault("redis.read_timeout", "500ms")
	v.SetDefault("redis.payment_request_info_ttl", "10m")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.closure_retry_topic", "transactions-closure-retry")
	v.SetDefault("kafka.notification_retry_topic", "transactions-notifications-retry")
	v.SetDefault("kafka.consumer_group", "ecommerce-transactions")
	v.SetDefault("kafka.max_closure_attempts", 3)
	v.SetDefault("kafka.retry_delay", "10s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "15m")
	v.SetDefault("jwt.issuer", "ecommerce-transactions")
	v.SetDefault("confidential.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("nodo.base_url", "http://localhost:8081")
	v.SetDefault("nodo.psp_fiscal_code", "00000000000")
	v.SetDefault("nodo.id_psp", "")
	v.SetDefault("nodo.id_broker_psp", "")
	v.SetDefault("nodo.id_channel", "")
	v.SetDefault("nodo.payment_token_timeout", "15m")
	v.SetDefault("nodo.connect_timeout", "2s")
	v.SetDefault("nodo.read_timeout", "10s")
	v.SetDefault("gateways.pgs_base_url", "http://localhost:8082")
	v.SetDefault("gateways.npg_base_url", "http://localhost:8083")
	v.SetDefault("gateways.npg_api_key", "")
	v.SetDefault("gateways.npg_result_url", "")
	v.SetDefault("gateways.npg_notify_url", "")
	v.SetDefault("gateways.npg_cancel_url", "")
	v.SetDefault("gateways.connect_timeout", "2s")
	v.SetDefault("gateways.read_timeout", "10s")
	v.SetDefault("gateways.session_attempts", 2)
	v.SetDefault("gateways.session_delay", "50ms")
	v.SetDefault("redirect.return_url", "")
	v.SetDefault("redirect.connect_timeout", "2s")
	v.SetDefault("redirect.read_timeout", "10s")
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("token_retry.attempts", 2)
	v.SetDefault("token_retry.delay", "50ms")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// ECT_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Redirect.PSPs))
	for _, psp := range c.Redirect.PSPs {
		pspID := psp.PSPID
		if pspID == "" {
			errs = append(errs, errors.New("redirect psp with empty psp_id"))
			continue
		}
		if seen[pspID] {
			errs = append(errs, fmt.Errorf("redirect psp %s: duplicated", pspID))
		}
		seen[pspID] = true
		if psp.URL == "" {
			errs = append(errs, fmt.Errorf("redirect psp %s: missing url", pspID))
		}
		if psp.APIKey == "" {
			errs = append(errs, fmt.Errorf("redirect psp %s: missing api key", pspID))
		}
		if psp.Logo == "" {
			errs = append(errs, fmt.Errorf("redirect psp %s: missing logo", pspID))
		}
	}

	timeouts := map[string]time.Duration{
		"nodo.connect_timeout":     c.Nodo.ConnectTimeout,
		"nodo.read_timeout":        c.Nodo.ReadTimeout,
		"gateways.connect_timeout": c.Gateways.ConnectTimeout,
		"gateways.read_timeout":    c.Gateways.ReadTimeout,
		"redirect.connect_timeout": c.Redirect.ConnectTimeout,
		"redirect.read_timeout":    c.Redirect.ReadTimeout,
	}
	for key, d := range timeouts {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", key))
		}
	}

	if c.TokenRetry.Attempts < 1 {
		errs = append(errs, errors.New("token_retry.attempts must be at least 1"))
	}
	if c.Kafka.MaxClosureAttempts < 1 {
		errs = append(errs, errors.New("kafka.max_closure_attempts must be at least 1"))
	}

	return errors.Join(errs...)
}
