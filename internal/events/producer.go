package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

const OrderPlacedTopic = "order.placed"

type OrderPlacedItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderPlacedEvent struct {
	OrderID     string            `json:"order_id"`
	CustomerID  int64             `json:"customer_id"`
	Username    string            `json:"username"`
	TotalAmount int64             `json:"total_amount"`
	Items       []OrderPlacedItem `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	EventTime   time.Time         `json:"event_time"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

// KafkaPublisher emits order.placed after the placement transaction commits.
// Publishing is best effort: the order service logs and swallows failures.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewKafkaPublisher(logger *logrus.Logger, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  OrderPlacedTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	event.EventTime = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID), // order_id for ordering
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"order_id":     event.OrderID,
		"total_amount": event.TotalAmount,
	}).Info("published order.placed event")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewOrderPlacedEvent maps a freshly placed order onto its event payload.
func NewOrderPlacedEvent(order *domain.Order) OrderPlacedEvent {
	items := make([]OrderPlacedItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderPlacedItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return OrderPlacedEvent{
		OrderID:     order.ID.String(),
		CustomerID:  order.CustomerID,
		Username:    order.Username,
		TotalAmount: order.TotalAmount,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}
