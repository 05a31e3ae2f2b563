package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Server       ServerConfig
	Logger       LoggerConfig
	Store        StoreConfig
	Postgres     PostgresConfig
	JWT          JWTConfig
	OrderService OrderServiceConfig
	Kafka        KafkaConfig
	POS          POSConfig
}

type ServerConfig struct {
	AppEnv  string
	AppName string
	Port    string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StoreConfig struct {
	Driver   string
	SeedDemo bool
}

type PostgresConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	TimeZone string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OrderServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type POSConfig struct {
	CheckoutDelay     time.Duration
	LowStockThreshold int
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:  getEnv("APP_ENV", "development"),
			AppName: getEnv("APP_NAME", "POS Inventory Dashboard v1.0"),
			Port:    getEnv("PORT", "3000"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", ""),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
			SeedDemo: getEnvBool("SEED_DEMO", true),
		},
		Postgres: PostgresConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "pos_inventory"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		OrderService: OrderServiceConfig{
			BaseURL: getEnv("ORDER_SERVICE_URL", "http://localhost:8004"),
			Timeout: getEnvDuration("ORDER_SERVICE_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "pos.events"),
		},
		POS: POSConfig{
			CheckoutDelay:     getEnvDuration("CHECKOUT_DELAY", 1500*time.Millisecond),
			LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := getEnv(key, "")
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
