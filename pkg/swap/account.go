package swap

// Account tracks a user's spendable balance in the smallest denomination.
// One account per identity, created lazily on first credit. An absent
// record is equivalent to balance 0.
//
// Note: the ledger tracks a single fungible balance per identity, not one
// sub-balance per currency. Order currency fields are descriptive metadata
// only (see Order).
type Account struct {
	Address Identity `json:"address"`
	Balance uint64   `json:"balance"`
}

// NewAccount creates an account with zero balance.
func NewAccount(addr Identity) *Account {
	return &Account{Address: addr}
}

// CanDebit reports whether the account holds at least amount.
func (a *Account) CanDebit(amount uint64) bool {
	return a.Balance >= amount
}
