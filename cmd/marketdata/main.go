package main

import (
	"context"
	"flag"
	"log"

	"github.com/min-nguyen/quant-ana-go/internal/config"
	timeseriesv1 "github.com/min-nguyen/quant-ana-go/internal/domain/timeseries/v1"
	"github.com/min-nguyen/quant-ana-go/internal/infrastructure/alphavantage"
	"github.com/min-nguyen/quant-ana-go/pkg/logger"
)

func main() {
	symbol := flag.String("symbol", "AAPL", "ticker symbol to retrieve")
	kindName := flag.String("kind", "daily", "series kind (intraday, daily, daily_adjusted, weekly, weekly_adjusted, monthly, monthly_adjusted)")
	intervalName := flag.String("interval", "1min", "bar interval for intraday series")
	file := flag.String("file", "", "decode a cached response file instead of fetching")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer l.Sync()

	client := alphavantage.NewClient(cfg.AlphaVantage, l)

	var series *timeseriesv1.TimeSeries
	if *file != "" {
		series, err = client.ReadFile(*file)
	} else {
		var req timeseriesv1.Request
		req.Symbol = *symbol
		req.Kind, err = timeseriesv1.ParseKind(*kindName)
		if err == nil && req.Kind == timeseriesv1.KindIntraday {
			req.Interval, err = timeseriesv1.ParseInterval(*intervalName)
		}
		if err == nil {
			series, err = client.Fetch(context.Background(), req)
		}
	}
	if err != nil {
		l.Error(err)
		l.Sync()
		log.Fatalf("Failed to retrieve time series: %v", err)
	}

	l.Info("time series retrieved",
		logger.Field{Key: "symbol", Value: series.Meta.Symbol},
		logger.Field{Key: "lastRefreshed", Value: series.Meta.LastRefreshed},
		logger.Field{Key: "timeZone", Value: series.Meta.TimeZone},
		logger.Field{Key: "bars", Value: len(series.Bars)},
	)

	if len(series.Bars) == 0 {
		return
	}

	var high float32
	var low float32
	first := true
	for _, h := range series.Highs() {
		if first || h > high {
			high = h
		}
		first = false
	}
	first = true
	for _, lo := range series.Lows() {
		if first || lo < low {
			low = lo
		}
		first = false
	}

	l.Info("series range",
		logger.Field{Key: "high", Value: high},
		logger.Field{Key: "low", Value: low},
	)
}
