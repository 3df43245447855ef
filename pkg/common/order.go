package common

import (
	"time"

	"github.com/mfolta/backsim/pkg/fixed"
)

type OrderSide int
type OrderType int
type OrderStatus int
type TimeInForce int

const (
	// Primary open sides.
	OrderSideBuy OrderSide = iota
	OrderSideSellShort
	// Closing sides.
	OrderSideSell
	OrderSideBuyToCover
)

const (
	OrderTypeMarket OrderType = iota
	OrderTypeStop
	OrderTypeLimit
)

const (
	OrderStatusNew OrderStatus = iota
	OrderStatusSubmitted
	OrderStatusAccepted
	OrderStatusFilled
	OrderStatusCancelled
	OrderStatusExpired
	OrderStatusRejected
)

const (
	TimeInForceGoodTillCancel TimeInForce = iota
	TimeInForceGoodTillDate
	// TimeInForceOpen restricts the order to the next bar's open price,
	// TimeInForceClose to the current bar's close.
	TimeInForceOpen
	TimeInForceClose
)

// CommissionFunc prices one fill leg. Position is nil when the fill opens a
// fresh position.
type CommissionFunc func(price, quantity fixed.Point, position *Position) fixed.Point

// Order is created by the strategy. From submission on it is mutated only by
// the matching engine.
type Order struct {
	ID          int64
	Symbol      string
	Side        OrderSide
	Type        OrderType
	Quantity    fixed.Point
	StopPrice   fixed.Point
	LimitPrice  fixed.Point
	ExitStop    fixed.Point
	ExitLimit   fixed.Point
	TimeInForce TimeInForce
	Expiration  time.Time
	Status      OrderStatus

	// Latency models the delay between submission and broker acceptance.
	// ValidSince clamps the acceptance time from below.
	SubmittedTime time.Time
	Latency       time.Duration
	ValidSince    time.Time

	// CancelRequested is the strategy's side of a cooperative cancel, the
	// engine turns it into OrderStatusCancelled on the next bar.
	CancelRequested bool

	Commission CommissionFunc
}

// AcceptedTime is submission plus latency, clamped to ValidSince.
func (o *Order) AcceptedTime() time.Time {
	t := o.SubmittedTime.Add(o.Latency)
	if t.Before(o.ValidSince) {
		return o.ValidSince
	}
	return t
}

func (o *Order) AcceptedBy(now time.Time) bool {
	return !o.AcceptedTime().After(now)
}

func (o *Order) ExpiredBy(now time.Time) bool {
	return o.TimeInForce == TimeInForceGoodTillDate && !o.Expiration.IsZero() && now.After(o.Expiration)
}

// IsBuy reports whether the fill consumes the ask side, which is where spread
// is charged.
func (o *Order) IsBuy() bool {
	return o.Side == OrderSideBuy || o.Side == OrderSideBuyToCover
}

// OpensPosition reports whether the side is a primary open.
func (o *Order) OpensPosition() bool {
	return o.Side == OrderSideBuy || o.Side == OrderSideSellShort
}

// SignedQuantity is positive for buys, negative for sells.
func (o *Order) SignedQuantity() fixed.Point {
	if o.IsBuy() {
		return o.Quantity
	}
	return o.Quantity.Neg()
}

// ImmediateOrCancel orders never rest on the book: market orders either fill
// at the next admissible price or are dropped.
func (o *Order) ImmediateOrCancel() bool {
	return o.Type == OrderTypeMarket
}

func (o *Order) Terminal() bool {
	switch o.Status {
	case OrderStatusFilled, OrderStatusCancelled, OrderStatusExpired, OrderStatusRejected:
		return true
	default:
		return false
	}
}

func (o *Order) CommissionFor(price, quantity fixed.Point, position *Position) fixed.Point {
	if o.Commission == nil {
		return fixed.Zero
	}
	return o.Commission(price, quantity, position)
}

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "buy"
	case OrderSideSellShort:
		return "sell-short"
	case OrderSideSell:
		return "sell"
	case OrderSideBuyToCover:
		return "buy-to-cover"
	default:
		return "unknown"
	}
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusNew:
		return "new"
	case OrderStatusSubmitted:
		return "submitted"
	case OrderStatusAccepted:
		return "accepted"
	case OrderStatusFilled:
		return "filled"
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusExpired:
		return "expired"
	case OrderStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
