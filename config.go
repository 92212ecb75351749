package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Soukthavilay/qr-order/database"
	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
)

// Config holds all configuration for the restaurant service.
type Config struct {
	Port        string
	AppEnv      string
	ServiceName string

	AllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	Postgres database.PostgresConfig

	MongoURI            string
	MongoDB             string
	MongoMenuCollection string

	AWSEndpoint            string
	DynamoInventoryTable   string
	DynamoAdjustmentsTable string
	S3Bucket               string
	ImageURLExpiry         time.Duration

	// EventBus is "sns", "kafka" or empty; EventTopic is the SNS topic ARN
	// or Kafka topic events are published to.
	EventBus   string
	EventTopic string
	// EventSource is "kafka", "sqs" or empty.
	EventSource  string
	KafkaBrokers []string
	KitchenTopic string
	KafkaGroupID string
	SQSQueueURL  string

	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	LoginRate      float64
	LoginBurst     int
	RequestTimeout time.Duration

	CloudWatchEnabled bool
	MetricsNamespace  string
	LogGroup          string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		ServiceName:    getEnv("SERVICE_NAME", "qr-order"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		Postgres: database.PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Vientiane"),
		},

		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDB:             getEnv("MONGO_DB", "restaurant"),
		MongoMenuCollection: getEnv("MONGO_MENU_COLLECTION", "menu_items"),

		AWSEndpoint:            os.Getenv("AWS_ENDPOINT"),
		DynamoInventoryTable:   os.Getenv("DDB_INVENTORY_TABLE"),
		DynamoAdjustmentsTable: getEnv("DDB_ADJUSTMENTS_TABLE", "stock_adjustments"),
		S3Bucket:               os.Getenv("MENU_IMAGES_BUCKET"),
		ImageURLExpiry:         getEnvDuration("MENU_IMAGE_URL_EXPIRY", 15*time.Minute),

		EventBus:     strings.ToLower(os.Getenv("EVENT_BUS")),
		EventTopic:   os.Getenv("EVENT_TOPIC"),
		EventSource:  strings.ToLower(os.Getenv("EVENT_SOURCE")),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KitchenTopic: getEnv("KITCHEN_EVENTS_TOPIC", "kitchen.events"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "qr-order"),
		SQSQueueURL:  os.Getenv("KITCHEN_EVENTS_QUEUE_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 12*time.Hour),
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		LoginRate:      getEnvFloat("LOGIN_RATE_PER_SEC", 1),
		LoginBurst:     getEnvInt("LOGIN_BURST", 5),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		MetricsNamespace:  getEnv("METRICS_NAMESPACE", "QROrder"),
		LogGroup:          getEnv("CLOUDWATCH_LOG_GROUP", "/qr-order/app"),
	}

	// Override DB credentials and the JWT secret from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background(), cfg.AWSEndpoint); err == nil {
			applySecrets(context.Background(), cfg, aws_pkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

func applySecrets(ctx context.Context, cfg *Config, sm secretGetter) {
	if m, err := sm.GetSecretMap(ctx, "qr-order/DB_CREDENTIALS"); err == nil {
		if v, ok := m["POSTGRES_USER"]; ok && v != "" {
			cfg.Postgres.User = v
		}
		if v, ok := m["POSTGRES_PASSWORD"]; ok && v != "" {
			cfg.Postgres.Password = v
		}
		if v, ok := m["POSTGRES_DB"]; ok && v != "" {
			cfg.Postgres.DBName = v
		}
		if v, ok := m["POSTGRES_HOST"]; ok && v != "" {
			cfg.Postgres.Host = v
		}
		if v, ok := m["POSTGRES_PORT"]; ok && v != "" {
			cfg.Postgres.Port = v
		}
	}
	if v, err := sm.GetSecret(ctx, "qr-order/JWT_SECRET"); err == nil && v != "" {
		cfg.JWTSecret = v
	}
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET not set")
	}
	if c.Postgres.Host != "" && (c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "") {
		return fmt.Errorf("database config incomplete")
	}
	switch c.EventBus {
	case "", "sns", "kafka":
	default:
		return fmt.Errorf("unsupported EVENT_BUS %q", c.EventBus)
	}
	switch c.EventSource {
	case "", "kafka":
	case "sqs":
		if c.SQSQueueURL == "" {
			return fmt.Errorf("KITCHEN_EVENTS_QUEUE_URL required for EVENT_SOURCE=sqs")
		}
	default:
		return fmt.Errorf("unsupported EVENT_SOURCE %q", c.EventSource)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
