// Package kafka publica los movimientos de stock confirmados.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/jhoicas/inventory-manager/internal/application/inventory"
	"github.com/jhoicas/inventory-manager/pkg/config"
)

var (
	_ inventory.EventPublisher = (*Producer)(nil)
	_ inventory.EventPublisher = NopPublisher{}
)

// Producer publica inventory.StockEvent en un topic (clave = product_id, para mantener el orden por producto).
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaConfig configuración del productor síncrono: espera a todas las réplicas.
func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return cfg
}

// NewProducer conecta con los brokers configurados.
func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	p, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewProducerWith(p, cfg.Topic), nil
}

// NewProducerWith envuelve un SyncProducer existente (tests: sarama/mocks).
func NewProducerWith(p sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: p, topic: topic}
}

// Publish envía los eventos en un solo lote.
func (p *Producer) Publish(_ context.Context, events []inventory.StockEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal stock event: %w", err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(ev.ProductID),
			Value: sarama.ByteEncoder(data),
		})
	}
	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("kafka send: %w", err)
	}
	return nil
}

// Close cierra el productor.
func (p *Producer) Close() error {
	return p.producer.Close()
}

// NopPublisher descarta los eventos (Kafka no configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, []inventory.StockEvent) error { return nil }
