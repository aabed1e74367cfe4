// Package engine implements the transactional state machine governing
// account balances and swap-order lifecycle. Every operation runs to
// completion under one lock: no two calls interleave their reads and
// writes on the same account or order, and every multi-record mutation
// commits through a single Pebble batch so a call either fully persists
// or fully fails.
package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hwanjo/swapdesk/pkg/storage"
	"github.com/hwanjo/swapdesk/pkg/swap"
	"github.com/hwanjo/swapdesk/pkg/util"
)

type Engine struct {
	mu     sync.Mutex
	store  *storage.Store
	oracle swap.PriceOracle
	clock  util.Clock
	log    *zap.SugaredLogger
}

// New creates an engine over the given store. The oracle decides limit
// order eligibility; the clock stamps order creation times.
func New(store *storage.Store, oracle swap.PriceOracle, clock util.Clock, log *zap.SugaredLogger) *Engine {
	return &Engine{
		store:  store,
		oracle: oracle,
		clock:  clock,
		log:    log,
	}
}

// Deposit credits amount to the caller's account, creating it on first
// use. The only balance-creating event in the system.
func (e *Engine) Deposit(caller swap.Identity, amount uint64, currency string) error {
	if err := swap.ValidateAmount(amount); err != nil {
		return err
	}
	if err := swap.ValidateCurrency(currency); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.account(caller)
	if err != nil {
		return err
	}
	acc.Balance += amount

	b := e.store.NewBatch()
	defer b.Close()
	if err := b.PutAccount(acc); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return err
	}

	e.log.Infow("deposit", "caller", caller.Hex(), "amount", amount, "currency", currency, "balance", acc.Balance)
	return nil
}

// CreateSwapOrder validates the request, escrows FromAmount from the
// caller, allocates a new order id and stores the order in status Created.
// Returns the new order id.
//
// The escrow is debited before any counterparty commits to the trade so
// the same balance cannot back two concurrently created orders. All
// business failures occur before the id is drawn, so failed creations
// never waste ids.
func (e *Engine) CreateSwapOrder(caller swap.Identity, fromCurrency, toCurrency string, fromAmount, toAmount uint64, orderType swap.OrderType) (uint64, error) {
	if err := swap.ValidateAmount(fromAmount); err != nil {
		return 0, err
	}
	if err := swap.ValidateAmount(toAmount); err != nil {
		return 0, err
	}
	if err := swap.ValidateCurrency(fromCurrency); err != nil {
		return 0, err
	}
	if err := swap.ValidateCurrency(toCurrency); err != nil {
		return 0, err
	}
	if err := swap.ValidateOrderType(orderType); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.account(caller)
	if err != nil {
		return 0, err
	}
	if !acc.CanDebit(fromAmount) {
		return 0, swap.ErrInsufficientFunds
	}
	acc.Balance -= fromAmount

	id, err := e.store.NextOrderID()
	if err != nil {
		return 0, err
	}

	ord := &swap.Order{
		ID:           id,
		Owner:        caller,
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		FromAmount:   fromAmount,
		ToAmount:     toAmount,
		Type:         orderType,
		CreatedAt:    e.clock.Now(),
		Status:       swap.StatusCreated,
	}

	b := e.store.NewBatch()
	defer b.Close()
	if err := b.PutAccount(acc); err != nil {
		return 0, err
	}
	if err := b.PutOrder(ord); err != nil {
		return 0, err
	}
	if err := b.Commit(); err != nil {
		return 0, err
	}

	e.log.Infow("order_created",
		"id", id, "owner", caller.Hex(),
		"from", fromCurrency, "to", toCurrency,
		"from_amount", fromAmount, "to_amount", toAmount,
		"type", orderType.Kind.String())
	return id, nil
}

// ExecuteSwapOrder settles a Created order: ToAmount moves from the
// executor to the owner and the order becomes Executed. The escrowed
// FromAmount is not paid out here; it is only ever returned via
// cancellation. That asymmetry is the modeled business rule.
func (e *Engine) ExecuteSwapOrder(executor swap.Identity, orderID uint64) error {
	if executor == swap.Anonymous {
		return swap.ErrAnonymousNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ord, err := e.store.Order(orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return swap.ErrInvalidOrderID
	}
	if ord.Status != swap.StatusCreated {
		return swap.ErrInvalidOrderStatus
	}
	if executor == ord.Owner {
		return swap.ErrOwnerCannotExecute
	}
	if ord.Type.Kind == swap.KindLimit && !e.oracle.PriceConditionMet(ord.Type.Price) {
		return swap.ErrPriceConditionNotMet
	}

	b := e.store.NewBatch()
	defer b.Close()

	if err := e.transferFunds(b, executor, ord.Owner, ord.ToAmount); err != nil {
		return err
	}

	ord.Status = swap.StatusExecuted
	if err := b.PutOrder(ord); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return err
	}

	e.log.Infow("order_executed", "id", orderID, "executor", executor.Hex(), "owner", ord.Owner.Hex(), "to_amount", ord.ToAmount)
	return nil
}

// CancelSwapOrder cancels a Created order. Only the owner may cancel; the
// escrowed FromAmount is refunded in full and the order becomes Cancelled.
func (e *Engine) CancelSwapOrder(caller swap.Identity, orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ord, err := e.store.Order(orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return swap.ErrInvalidOrderID
	}
	if ord.Status != swap.StatusCreated {
		return swap.ErrInvalidOrderStatus
	}
	if caller != ord.Owner {
		return swap.ErrUnauthorized
	}

	acc, err := e.account(caller)
	if err != nil {
		return err
	}
	acc.Balance += ord.FromAmount
	ord.Status = swap.StatusCancelled

	b := e.store.NewBatch()
	defer b.Close()
	if err := b.PutAccount(acc); err != nil {
		return err
	}
	if err := b.PutOrder(ord); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return err
	}

	e.log.Infow("order_cancelled", "id", orderID, "owner", caller.Hex(), "refund", ord.FromAmount)
	return nil
}

// GetUserBalance returns the caller's balance. ok is false when no
// account record exists (equivalent to balance 0). Read-only.
func (e *Engine) GetUserBalance(caller swap.Identity) (balance uint64, ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.store.Account(caller)
	if err != nil {
		return 0, false, err
	}
	if acc == nil {
		return 0, false, nil
	}
	return acc.Balance, true, nil
}

// GetSwapOrder returns a copy of the order, or nil if absent. Read-only.
func (e *Engine) GetSwapOrder(orderID uint64) (*swap.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Order(orderID)
}

// transferFunds stages a balance move from -> to into the batch. No-op on
// zero amount or self-transfer. The sender must already hold an account
// record; the recipient is created lazily. Both writes land in the same
// batch so a later commit failure leaves no partial debit.
func (e *Engine) transferFunds(b *storage.Batch, from, to swap.Identity, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}

	fromAcc, err := e.store.Account(from)
	if err != nil {
		return err
	}
	if fromAcc == nil {
		return swap.ErrUserNotFound
	}
	if !fromAcc.CanDebit(amount) {
		return swap.ErrInsufficientFunds
	}

	toAcc, err := e.account(to)
	if err != nil {
		return err
	}

	fromAcc.Balance -= amount
	toAcc.Balance += amount

	if err := b.PutAccount(fromAcc); err != nil {
		return err
	}
	return b.PutAccount(toAcc)
}

// account loads an account, lazily creating the record in memory when
// absent. Nothing is persisted until the caller commits a batch.
func (e *Engine) account(addr swap.Identity) (*swap.Account, error) {
	acc, err := e.store.Account(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		acc = swap.NewAccount(addr)
	}
	return acc, nil
}
