package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ticketly/internal/sessions"
	"ticketly/pkg/logger"

	"github.com/IBM/sarama"
)

// KafkaProducerConfig contains configuration for the session event producer
type KafkaProducerConfig struct {
	Brokers          []string
	SessionsTopic    string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		SessionsTopic:    "sessions.scheduled",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// SessionPublisher writes sessions.scheduled events to Kafka.
type SessionPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewKafkaSessionPublisher connects a sync producer to the configured brokers.
func NewKafkaSessionPublisher(config *KafkaProducerConfig) (*SessionPublisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// same title, same partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewSessionPublisher(producer, config), nil
}

func NewSessionPublisher(producer sarama.SyncProducer, config *KafkaProducerConfig) *SessionPublisher {
	return &SessionPublisher{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}
}

func (p *SessionPublisher) PublishSessionsScheduled(ctx context.Context, event sessions.ScheduledEvent) error {
	msg := NewSessionsScheduledMessage(event)

	messageBytes, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.SessionsTopic,
		Key:       sarama.StringEncoder(msg.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(msg),
		Timestamp: msg.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}

	p.log.DebugContext(ctx, "Sessions scheduled event published",
		slog.String("topic", p.config.SessionsTopic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
		slog.String("title_id", event.MovieID.String()),
	)
	return nil
}

func (p *SessionPublisher) createHeaders(msg *Message) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(msg.ID.String())},
		{Key: []byte("event_type"), Value: []byte(msg.Type)},
		{Key: []byte("title_id"), Value: []byte(msg.Payload.MovieID.String())},
		{Key: []byte("version"), Value: []byte(msg.Version)},
		{Key: []byte("producer"), Value: []byte(msg.Producer)},
	}
}

func (p *SessionPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// NoopPublisher drops events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishSessionsScheduled(ctx context.Context, event sessions.ScheduledEvent) error {
	return nil
}
