package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type StoreBackend string

const (
	StoreMongo    StoreBackend = "mongo"
	StoreDynamoDB StoreBackend = "dynamodb"
	StorePostgres StoreBackend = "postgres"
	StoreSQLite   StoreBackend = "sqlite"
	StoreMemory   StoreBackend = "memory"
)

type TranslatorProvider string

const (
	TranslatorGoogle TranslatorProvider = "google"
	TranslatorOpenAI TranslatorProvider = "openai"
	TranslatorNone   TranslatorProvider = "none"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Record store
	StoreBackend    StoreBackend  `env:"STORE_BACKEND" envDefault:"mongo"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	MongoURI        string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string        `env:"MONGO_DATABASE" envDefault:"analisis_sentimientos"`
	MongoCollection string        `env:"MONGO_COLLECTION" envDefault:"historial_comentarios"`
	DynamoDBTable   string        `env:"DYNAMODB_TABLE" envDefault:"CommentAnalysis"`
	AWSRegion       string        `env:"AWS_REGION" envDefault:"us-west-2"`
	AWSEndpoint     string        `env:"AWS_ENDPOINT"`
	PostgresDSN     string        `env:"POSTGRES_DSN"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"data/comments.db"`

	// Translation
	Translator          TranslatorProvider `env:"TRANSLATOR" envDefault:"google"`
	OpenAIAPIKey        string             `env:"OPENAI_API_KEY"`
	OpenAIModel         string             `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ValkeyAddress       string             `env:"VALKEY_INIT_ADDRESS"`
	ValkeyPassword      string             `env:"VALKEY_PASSWORD"`
	ValkeyTLS           bool               `env:"VALKEY_TLS" envDefault:"false"`
	TranslationCacheTTL time.Duration      `env:"TRANSLATION_CACHE_TTL" envDefault:"24h"`

	// Events
	KafkaBroker string `env:"KAFKA_BROKER"`
	KafkaTopic  string `env:"KAFKA_TOPIC" envDefault:"comment-analysis"`

	// SnowflakeNode selects the record id node; -1 derives one per process.
	SnowflakeNode  int64 `env:"SNOWFLAKE_NODE" envDefault:"-1"`
	HistoryMaxRows int   `env:"HISTORY_MAX_ROWS" envDefault:"0"`
}

// Load parses the process environment into a Config. LoadEnv should run first
// so values from the env file are visible.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("[Config] failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMongo, StoreDynamoDB, StorePostgres, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("[Config] unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.Translator {
	case TranslatorGoogle, TranslatorNone:
	case TranslatorOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("[Config] TRANSLATOR=openai requires OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("[Config] unknown TRANSLATOR %q", c.Translator)
	}

	if c.HistoryMaxRows < 0 {
		return fmt.Errorf("[Config] HISTORY_MAX_ROWS must not be negative")
	}
	// snowflake reserves 10 bits for the node number
	if c.SnowflakeNode < -1 || c.SnowflakeNode > 1023 {
		return fmt.Errorf("[Config] SNOWFLAKE_NODE must be -1 or between 0 and 1023")
	}
	return nil
}
