package swap

import "regexp"

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateAmount rejects zero amounts.
func ValidateAmount(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateCurrency accepts exactly 3 uppercase ASCII letters ("USD").
func ValidateCurrency(currency string) error {
	if !currencyRe.MatchString(currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// ValidateOrderType checks that a limit order carries a positive price.
// Market orders always pass.
func ValidateOrderType(t OrderType) error {
	if t.Kind == KindLimit && t.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
