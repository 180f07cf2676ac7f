package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/clutchcall/ledger-platform/pkg/contracts/events"
)

// KafkaPublisher publica eventos de ticket nos tópicos do ledger
type KafkaPublisher struct {
	Placed  *kafka.Writer
	Settled *kafka.Writer
}

func NewKafkaPublisher(placed, settled *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Placed: placed, Settled: settled}
}

func (p *KafkaPublisher) PublishTicketPlaced(ctx context.Context, e events.TicketPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Placed.WriteMessages(ctx, kafka.Message{Key: []byte(e.TicketID), Value: b})
}

func (p *KafkaPublisher) PublishTicketSettled(ctx context.Context, e events.TicketSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Settled.WriteMessages(ctx, kafka.Message{Key: []byte(e.TicketID), Value: b})
}
