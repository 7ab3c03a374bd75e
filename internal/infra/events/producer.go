package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer публикует события бронирований в Kafka
type Producer struct {
	writer *kafka.Writer
	log    Logger
}

// NewProducer создает producer для топика событий бронирований
// Ключ сообщения - resource_id: события одного ресурса попадают в одну
// партицию и читаются потребителем в порядке коммитов
func NewProducer(brokers []string, topic string, log Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		// Дефолтный логгер kafka-go слишком шумный
		Logger:      kafka.LoggerFunc(func(string, ...interface{}) {}),
		ErrorLogger: kafka.LoggerFunc(log.Error),
	}

	return &Producer{writer: writer, log: log}
}

// Publish отправляет событие в топик
func (p *Producer) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ResourceID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.ID)},
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: failed to publish %s for booking id=%d: %w", event.Type, event.BookingID, err)
	}

	p.log.Info("events: published %s for booking id=%d resource id=%d", event.Type, event.BookingID, event.ResourceID)
	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher заглушка, когда Kafka отключена конфигурацией
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, Event) error { return nil }
