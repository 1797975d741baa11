package orderbook

import (
	orderv1 "github.com/min-nguyen/quant-ana-go/internal/domain/order/v1"
	"github.com/min-nguyen/quant-ana-go/pkg/clock"
)

// OrderBook tracks all live, unmatched limit orders for a single instrument,
// split into a bid queue and an ask queue.
//
// The book is single-writer: it performs no locking of its own. A matching
// engine built on top must serialize mutations or wrap the book in a mutex,
// since best-price queries need a consistent snapshot across both sides.
type OrderBook struct {
	bids      *OrderQueue
	asks      *OrderQueue
	idCounter uint64
}

// NewOrderBook creates an empty book with the id counter at zero.
func NewOrderBook() *OrderBook {
	return NewOrderBookWithClock(clock.RealClock{})
}

// NewOrderBookWithClock creates an empty book whose queues stamp entries with
// the given clock.
func NewOrderBookWithClock(c clock.Clock) *OrderBook {
	return &OrderBook{
		bids: NewOrderQueue(c),
		asks: NewOrderQueue(c),
	}
}

// InsertLimitOrder validates the order, assigns it the next id, and routes it
// to the bid or ask queue by side. The assigned id is returned.
//
// The id counter advances only when the queue insertion succeeds, so a
// rejected order never consumes an id and never leaves partial state behind.
func (ob *OrderBook) InsertLimitOrder(order orderv1.Order) (uint64, error) {
	if err := order.Validate(); err != nil {
		return 0, err
	}

	queue := ob.asks
	if order.IsBid() {
		queue = ob.bids
	}

	if err := queue.Insert(ob.idCounter, order); err != nil {
		return 0, err
	}

	id := ob.idCounter
	ob.idCounter++
	return id, nil
}

// BestBuyPrice returns the highest resting bid price, if any.
func (ob *OrderBook) BestBuyPrice() (uint64, bool) {
	entry, ok := ob.bids.Last()
	if !ok {
		return 0, false
	}
	return entry.Index.LimitPrice, true
}

// BestSellPrice returns the lowest resting ask price, if any.
func (ob *OrderBook) BestSellPrice() (uint64, bool) {
	entry, ok := ob.asks.First()
	if !ok {
		return 0, false
	}
	return entry.Index.LimitPrice, true
}

// MarketPrice returns the best resting price on the given side: the best buy
// for SideBuy and the best sell for SideSell.
//
// Note this reports the same-side top of book, not the price a marketable
// order of that side would execute at; a matching engine should consult the
// opposing side via BestBuyPrice/BestSellPrice directly.
func (ob *OrderBook) MarketPrice(side orderv1.Side) (uint64, bool) {
	if side == orderv1.SideBuy {
		return ob.BestBuyPrice()
	}
	return ob.BestSellPrice()
}

// MidPrice returns the midpoint of the best bid and best ask. It reports
// false unless both sides are populated.
func (ob *OrderBook) MidPrice() (float64, bool) {
	bid, ok := ob.BestBuyPrice()
	if !ok {
		return 0, false
	}
	ask, ok := ob.BestSellPrice()
	if !ok {
		return 0, false
	}
	return (float64(bid) + float64(ask)) / 2, true
}

// Bids returns the bid-side queue.
func (ob *OrderBook) Bids() *OrderQueue {
	return ob.bids
}

// Asks returns the ask-side queue.
func (ob *OrderBook) Asks() *OrderQueue {
	return ob.asks
}

// IDCounter returns the next id the book will assign.
func (ob *OrderBook) IDCounter() uint64 {
	return ob.idCounter
}
