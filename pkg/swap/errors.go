package swap

import "errors"

// Business-rule failures. Mutually exclusive, never wrapped around each
// other, all recoverable by the caller (retry with different input, or
// retry later for ErrPriceConditionNotMet). Storage failures are not part
// of this taxonomy and are propagated separately as fatal for the call.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidOrderID       = errors.New("invalid order id")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUserNotFound         = errors.New("user not found")
	ErrPriceConditionNotMet = errors.New("price condition not met")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidCurrency      = errors.New("invalid currency")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrAnonymousNotAllowed  = errors.New("anonymous caller not allowed")
	ErrOwnerCannotExecute   = errors.New("owner cannot execute own order")
)
