package orderbook

import (
	"errors"
	"sort"
	"time"

	orderv1 "github.com/min-nguyen/quant-ana-go/internal/domain/order/v1"
	"github.com/min-nguyen/quant-ana-go/pkg/clock"
)

var (
	// ErrOrderIDExists is returned when an order id is already present in the queue.
	ErrOrderIDExists = errors.New("order id already exists in queue")
	// ErrNotALimitOrder is returned when a market order reaches the queue.
	ErrNotALimitOrder = errors.New("order is not a limit order")
)

// OrderIndex is the composite sort key for a live limit order.
//
// The total order is lexicographic in (LimitPrice, Timestamp, OrderID).
// Price comes first so that the best bid is the maximum key and the best ask
// the minimum; the (timestamp, id) tail enforces FIFO within a price level.
type OrderIndex struct {
	LimitPrice uint64
	Timestamp  time.Time
	OrderID    uint64
}

// Less reports whether i sorts strictly before other.
func (i OrderIndex) Less(other OrderIndex) bool {
	if i.LimitPrice != other.LimitPrice {
		return i.LimitPrice < other.LimitPrice
	}
	if !i.Timestamp.Equal(other.Timestamp) {
		return i.Timestamp.Before(other.Timestamp)
	}
	return i.OrderID < other.OrderID
}

// Entry pairs an OrderIndex with the resting limit order it identifies.
type Entry struct {
	Index OrderIndex
	Order orderv1.Order
}

// OrderQueue is an ordered mapping from OrderIndex to limit orders,
// maintained in ascending index order.
//
// Invariants: every key's LimitPrice equals its order's LimitPrice, order ids
// are unique within the queue, and iteration yields ascending OrderIndex.
type OrderQueue struct {
	entries   []Entry
	ids       map[uint64]struct{}
	lastStamp time.Time
	clock     clock.Clock
}

// NewOrderQueue creates an empty queue stamping entries with the given clock.
func NewOrderQueue(c clock.Clock) *OrderQueue {
	return &OrderQueue{
		ids:   make(map[uint64]struct{}),
		clock: c,
	}
}

// Insert places a limit order under the composite key
// (limit price, now, order id).
//
// The stamp is clamped to never run backwards, so arrival order stays
// observable through (timestamp, id) even when the underlying clock is
// non-monotonic or too coarse to separate consecutive calls.
func (q *OrderQueue) Insert(orderID uint64, order orderv1.Order) error {
	if _, exists := q.ids[orderID]; exists {
		return ErrOrderIDExists
	}
	if order.Type != orderv1.TypeLimit {
		return ErrNotALimitOrder
	}

	stamp := q.clock.Now().UTC()
	if stamp.Before(q.lastStamp) {
		stamp = q.lastStamp
	}
	q.lastStamp = stamp

	entry := Entry{
		Index: OrderIndex{
			LimitPrice: order.LimitPrice,
			Timestamp:  stamp,
			OrderID:    orderID,
		},
		Order: order,
	}

	pos := sort.Search(len(q.entries), func(i int) bool {
		return entry.Index.Less(q.entries[i].Index)
	})
	q.entries = append(q.entries, Entry{})
	copy(q.entries[pos+1:], q.entries[pos:])
	q.entries[pos] = entry
	q.ids[orderID] = struct{}{}

	return nil
}

// GetByOrderID returns the entry with the given order id. Linear scan; not on
// the hot path.
func (q *OrderQueue) GetByOrderID(orderID uint64) (Entry, bool) {
	for _, entry := range q.entries {
		if entry.Index.OrderID == orderID {
			return entry, true
		}
	}
	return Entry{}, false
}

// GetByLimitPrice returns all entries resting at the given price, in
// ascending (timestamp, id) order. Entries at one price are contiguous
// because price is the major sort key, so this is a pair of binary searches
// plus the copy.
func (q *OrderQueue) GetByLimitPrice(limitPrice uint64) []Entry {
	lo := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Index.LimitPrice >= limitPrice
	})
	hi := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Index.LimitPrice > limitPrice
	})
	if lo == hi {
		return nil
	}
	level := make([]Entry, hi-lo)
	copy(level, q.entries[lo:hi])
	return level
}

// First returns the entry with the minimum OrderIndex.
func (q *OrderQueue) First() (Entry, bool) {
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[0], true
}

// Last returns the entry with the maximum OrderIndex.
func (q *OrderQueue) Last() (Entry, bool) {
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[len(q.entries)-1], true
}

// Len returns the number of live orders in the queue.
func (q *OrderQueue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of all entries in ascending OrderIndex order.
func (q *OrderQueue) Entries() []Entry {
	entries := make([]Entry, len(q.entries))
	copy(entries, q.entries)
	return entries
}
