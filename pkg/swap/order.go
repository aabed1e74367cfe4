package swap

import "time"

// Status represents the lifecycle state of a swap order.
// Created is the only non-terminal state: an order transitions exactly once
// to Executed or Cancelled and is immutable afterwards.
type Status int8

const (
	StatusCreated Status = iota
	StatusExecuted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusExecuted:
		return "executed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusExecuted || s == StatusCancelled
}

// Kind discriminates market orders from limit orders.
type Kind int8

const (
	KindMarket Kind = iota
	KindLimit
)

func (k Kind) String() string {
	switch k {
	case KindMarket:
		return "market"
	case KindLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// OrderType is the order kind plus, for limit orders, the price the
// external oracle checks at execution time. Price is meaningless for
// market orders and kept at zero.
type OrderType struct {
	Kind  Kind    `json:"kind"`
	Price float64 `json:"price,omitempty"`
}

// Market returns the market order type.
func Market() OrderType { return OrderType{Kind: KindMarket} }

// Limit returns a limit order type at the given price.
func Limit(price float64) OrderType { return OrderType{Kind: KindLimit, Price: price} }

// Order is a swap order record. Owned exclusively by the order store; the
// engine holds only transient copies during a single operation.
//
// FromAmount is escrowed (debited from the owner) at creation time and is
// only ever returned via cancellation. On execution only ToAmount moves
// from executor to owner.
type Order struct {
	ID           uint64    `json:"id"`
	Owner        Identity  `json:"owner"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	FromAmount   uint64    `json:"from_amount"`
	ToAmount     uint64    `json:"to_amount"`
	Type         OrderType `json:"order_type"`
	CreatedAt    time.Time `json:"created_at"`
	Status       Status    `json:"status"`
}
