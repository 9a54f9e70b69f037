package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	server "github.com/pjogani/vedics-api/internal/adapters/primary/http"
	alerterAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/alerter"
	geocoderAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/geocoder"
	kafkaAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/kafka"
	openaiAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/openai"
	"github.com/pjogani/vedics-api/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/storage/redis"
	"github.com/pjogani/vedics-api/internal/pkg/logger"
)

type Config struct {
	Postgres *pg.Config              `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config    `envconfig:"REDIS"`
	Log      *logger.Config          `envconfig:"LOG"`
	Server   *server.Config          `envconfig:"APISERVER"`
	OpenAI   *openaiAdapter.Config   `envconfig:"OPENAI"`
	Geocoder *geocoderAdapter.Config `envconfig:"GEOCODER"`
	Kafka    *kafkaAdapter.Config    `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config  `envconfig:"ALERTER"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	// Ключ модели проверяем на старте, без него сервис бесполезен
	if err := cfg.OpenAI.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
