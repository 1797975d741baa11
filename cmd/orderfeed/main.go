package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/min-nguyen/quant-ana-go/internal/config"
	"github.com/min-nguyen/quant-ana-go/internal/usecase/orderbook"
	"github.com/min-nguyen/quant-ana-go/internal/usecase/orderfeed"
	"github.com/min-nguyen/quant-ana-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer l.Sync()

	book := orderbook.NewOrderBook()
	reader := orderfeed.NewKafkaReader(cfg.OrderKafka)
	consumer := orderfeed.NewConsumer(reader, book, l)
	defer consumer.Close()

	l.Info("order feed started",
		logger.Field{Key: "app", Value: cfg.App.Name},
		logger.Field{Key: "environment", Value: cfg.App.Environment},
		logger.Field{Key: "brokers", Value: cfg.OrderKafka.Brokers},
		logger.Field{Key: "topic", Value: cfg.OrderKafka.Topic},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		l.Error(err)
	}

	bestBid, haveBid := book.BestBuyPrice()
	bestAsk, haveAsk := book.BestSellPrice()
	l.Info("order feed stopped",
		logger.Field{Key: "liveBids", Value: book.Bids().Len()},
		logger.Field{Key: "liveAsks", Value: book.Asks().Len()},
		logger.Field{Key: "bestBid", Value: bestBid},
		logger.Field{Key: "haveBid", Value: haveBid},
		logger.Field{Key: "bestAsk", Value: bestAsk},
		logger.Field{Key: "haveAsk", Value: haveAsk},
	)
}
