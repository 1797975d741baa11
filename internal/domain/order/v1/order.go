package orderv1

import "errors"

var (
	// ErrInvalidQuantity is returned when an order's quantity is zero.
	ErrInvalidQuantity = errors.New("order quantity must be positive")
	// ErrInvalidPrice is returned when a limit order's price is zero.
	ErrInvalidPrice = errors.New("limit price must be positive")
)

// Side represents which side of the book an order belongs to.
type Side int

const (
	// SideBuy represents a buy (bid) order.
	SideBuy Side = iota
	// SideSell represents a sell (ask) order.
	SideSell
)

// String returns the canonical lowercase name of the side.
func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// Type represents the type of order.
type Type string

const (
	// TypeLimit represents a limit order.
	TypeLimit Type = "limit"
	// TypeMarket represents a market order.
	TypeMarket Type = "market"
)

// Order represents a single order submitted to the book.
//
// Prices and quantities are unsigned integers in minor units. LimitPrice is
// meaningful only for limit orders. A future multi-asset extension would add
// order-asset and price-asset tags here; the current model is
// single-instrument.
type Order struct {
	Type       Type   `json:"type"`
	Side       Side   `json:"side"`
	Quantity   uint64 `json:"quantity"`
	LimitPrice uint64 `json:"limitPrice"`
}

// NewLimitOrder creates a limit order with the given side, quantity and
// worst-acceptable price.
func NewLimitOrder(side Side, quantity, limitPrice uint64) Order {
	return Order{
		Type:       TypeLimit,
		Side:       side,
		Quantity:   quantity,
		LimitPrice: limitPrice,
	}
}

// NewMarketOrder creates a market order with the given side and quantity.
func NewMarketOrder(side Side, quantity uint64) Order {
	return Order{
		Type:     TypeMarket,
		Side:     side,
		Quantity: quantity,
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o Order) IsAsk() bool {
	return o.Side == SideSell
}

// Validate checks the order's fields. It must be called before the order is
// handed to the book; market orders are not subject to the price check.
func (o Order) Validate() error {
	if o.Quantity == 0 {
		return ErrInvalidQuantity
	}
	if o.Type == TypeLimit && o.LimitPrice == 0 {
		return ErrInvalidPrice
	}
	return nil
}
