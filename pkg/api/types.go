package api

// Request and response types for the REST endpoints.

// DepositRequest credits the caller's account.
type DepositRequest struct {
	Amount   uint64 `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrderRequest creates a swap order on behalf of the caller.
// Type is "market" or "limit"; Price is required for limit orders.
type CreateOrderRequest struct {
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
	FromAmount   uint64  `json:"fromAmount"`
	ToAmount     uint64  `json:"toAmount"`
	Type         string  `json:"type"`
	Price        float64 `json:"price,omitempty"`
}

// CreateOrderResponse carries the newly allocated order id.
type CreateOrderResponse struct {
	OrderID uint64 `json:"orderId"`
}

// BalanceResponse reports an account balance. Exists is false when no
// account record has been created yet (balance reads as 0).
type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Exists  bool   `json:"exists"`
}

// OrderInfo is the wire representation of a swap order.
type OrderInfo struct {
	ID           uint64  `json:"id"`
	Owner        string  `json:"owner"`
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
	FromAmount   uint64  `json:"fromAmount"`
	ToAmount     uint64  `json:"toAmount"`
	Type         string  `json:"type"`
	Price        float64 `json:"price,omitempty"`
	CreatedAt    int64   `json:"createdAt"` // Unix milliseconds
	Status       string  `json:"status"`
}

// ErrorResponse is the error envelope for all non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
