package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
	kafkaPorts "github.com/pjogani/vedics-api/internal/ports/kafka"
)

// Действия фоновых задач
const (
	ActionGenerateMissing   = "generate_missing"
	ActionRegenerateReading = "regenerate_reading"
)

// ReadingJob сообщение фоновой задачи генерации чтений
type ReadingJob struct {
	Action      string `json:"action"`
	UserID      string `json:"user_id"`
	ReadingType string `json:"reading_type,omitempty"`
}

// Dispatcher реализует IDispatcher поверх sarama.SyncProducer.
// Доставка at-least-once: обработчик задач обязан быть идемпотентным.
type Dispatcher struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

// NewDispatcher создаёт новый Kafka producer для фоновых задач
func NewDispatcher(cfg *Config, log *slog.Logger) (kafkaPorts.IDispatcher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	applySecurity(config, cfg)

	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return &Dispatcher{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// applySecurity настраивает SASL/TLS по конфигурации
func applySecurity(config *sarama.Config, cfg *Config) {
	if cfg.SecurityProtocol != "SASL_SSL" && cfg.SecurityProtocol != "SASL_PLAINTEXT" {
		return
	}

	config.Net.SASL.Enable = true
	config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	if cfg.SASLMechanism == "SCRAM-SHA-256" {
		config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
	}
	config.Net.SASL.User = cfg.SASLUsername
	config.Net.SASL.Password = cfg.SASLPassword
	if cfg.SecurityProtocol == "SASL_SSL" {
		config.Net.TLS.Enable = true
	}
}

// DispatchMissingReadings ставит задачу досоздать недостающие долгосрочные чтения
func (d *Dispatcher) DispatchMissingReadings(ctx context.Context, userID uuid.UUID) error {
	return d.send(userID.String(), ReadingJob{
		Action: ActionGenerateMissing,
		UserID: userID.String(),
	})
}

// DispatchRegenerate ставит задачу перегенерировать одно чтение
func (d *Dispatcher) DispatchRegenerate(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) error {
	return d.send(userID.String(), ReadingJob{
		Action:      ActionRegenerateReading,
		UserID:      userID.String(),
		ReadingType: readingType.String(),
	})
}

// send сериализует задачу и отправляет в топик; ключ - user_id, чтобы
// задачи одного пользователя попадали в одну партицию
func (d *Dispatcher) send(key string, job ReadingJob) error {
	valueBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal reading job: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(valueBytes),
	}

	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		d.log.Debug("kafka send failed",
			"error", err,
			"topic", d.cfg.Topic,
			"key", key,
		)
		return fmt.Errorf("kafka send failed [topic=%s, key=%s]: %w", d.cfg.Topic, key, err)
	}

	d.log.Debug("reading job dispatched",
		"topic", d.cfg.Topic,
		"partition", partition,
		"offset", offset,
		"action", job.Action,
		"key", key,
	)

	return nil
}

// Close закрывает producer
func (d *Dispatcher) Close() error {
	if err := d.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	d.log.Info("kafka producer closed")
	return nil
}
