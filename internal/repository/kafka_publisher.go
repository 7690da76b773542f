package repository

import (
	"context"

	"RegimeScope/internal/domain/models"
	"RegimeScope/internal/domain/repository"
	pkgkafka "RegimeScope/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Reports are keyed by
// ticker so consumers see per-ticker ordering.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka report publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishReport(ctx context.Context, report *models.Report) error {
	if report == nil {
		return nil
	}
	return p.producer.Publish(ctx, p.topic, []byte(report.Ticker), report)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
