package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/database"
	"github.com/segmentio/kafka-go"
)

// TradeEvent is published after a trade has been reconciled: the
// transaction row and the asset mutation have both committed.
type TradeEvent struct {
	EventType string             `json:"event_type"`
	Source    string             `json:"source"`
	Timestamp string             `json:"timestamp"`
	Data      *database.TradeResult `json:"data"`
}

// Producer publishes trade events to Kafka
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Kafka producer for the trades topic
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{writer: writer}
}

// PublishTradeExecuted emits a TRADE_EXECUTED event. Callers treat
// failures as best-effort; a lost event never fails the trade.
func (p *Producer) PublishTradeExecuted(ctx context.Context, result *database.TradeResult) error {
	event := TradeEvent{
		EventType: "TRADE_EXECUTED",
		Source:    "portfolio-service",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      result,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal trade event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(result.AssetName),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish trade event: %w", err)
	}
	return nil
}

// Close closes the Kafka writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
