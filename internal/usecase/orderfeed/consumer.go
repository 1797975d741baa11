package orderfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/min-nguyen/quant-ana-go/internal/config"
	orderv1 "github.com/min-nguyen/quant-ana-go/internal/domain/order/v1"
	"github.com/min-nguyen/quant-ana-go/internal/usecase/orderbook"
	pkgerrors "github.com/min-nguyen/quant-ana-go/pkg/errors"
	"github.com/min-nguyen/quant-ana-go/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// PlaceOrderRequest is the wire shape of an order feed message.
type PlaceOrderRequest struct {
	Type     string `json:"type"`
	Side     string `json:"side"`
	Quantity uint64 `json:"quantity"`
	Price    uint64 `json:"price"`
}

// Order converts the request into a domain order.
func (r PlaceOrderRequest) Order() (orderv1.Order, error) {
	var side orderv1.Side
	switch r.Side {
	case "buy":
		side = orderv1.SideBuy
	case "sell":
		side = orderv1.SideSell
	default:
		return orderv1.Order{}, fmt.Errorf("unknown order side %q", r.Side)
	}

	switch orderv1.Type(r.Type) {
	case orderv1.TypeLimit:
		return orderv1.NewLimitOrder(side, r.Quantity, r.Price), nil
	case orderv1.TypeMarket:
		return orderv1.NewMarketOrder(side, r.Quantity), nil
	default:
		return orderv1.Order{}, fmt.Errorf("unknown order type %q", r.Type)
	}
}

// Reader is the slice of the Kafka reader the consumer needs.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// NewKafkaReader creates a Kafka reader for the order feed topic.
func NewKafkaReader(cfg config.OrderKafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
}

// Consumer feeds order messages from a Kafka topic into an order book.
//
// The book is single-writer, so the consumer is the only goroutine allowed to
// mutate it while running.
type Consumer struct {
	reader Reader
	book   *orderbook.OrderBook
	logger logger.Interface
}

// NewConsumer creates a consumer inserting into the given book.
func NewConsumer(reader Reader, book *orderbook.OrderBook, log logger.Interface) *Consumer {
	return &Consumer{
		reader: reader,
		book:   book,
		logger: log,
	}
}

// Run consumes messages until the context is cancelled. Malformed or rejected
// messages are logged and skipped; the book's invariants are never corrupted
// by a bad message.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.logger.Error(err, logger.Field{Key: "operation", Value: "ReadMessage"})
			return pkgerrors.TracerFromError(err)
		}

		c.handle(msg)
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) handle(msg kafka.Message) {
	var req PlaceOrderRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		c.logger.Error(err,
			logger.Field{Key: "operation", Value: "UnmarshalOrder"},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
		return
	}

	order, err := req.Order()
	if err != nil {
		c.logger.Error(err,
			logger.Field{Key: "operation", Value: "ParseOrder"},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
		return
	}

	id, err := c.book.InsertLimitOrder(order)
	if err != nil {
		c.logger.Error(err,
			logger.Field{Key: "operation", Value: "InsertLimitOrder"},
			logger.Field{Key: "offset", Value: msg.Offset},
			logger.Field{Key: "side", Value: order.Side.String()},
			logger.Field{Key: "quantity", Value: order.Quantity},
			logger.Field{Key: "price", Value: order.LimitPrice},
		)
		return
	}

	c.logger.Info("order placed",
		logger.Field{Key: "orderID", Value: id},
		logger.Field{Key: "offset", Value: msg.Offset},
		logger.Field{Key: "side", Value: order.Side.String()},
		logger.Field{Key: "quantity", Value: order.Quantity},
		logger.Field{Key: "price", Value: order.LimitPrice},
	)
}
