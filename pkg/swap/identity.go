package swap

import "github.com/ethereum/go-ethereum/common"

// Identity is the authenticated caller reference used as the ledger's
// account key. EVM-style 20-byte addresses give us an opaque, orderable,
// equality-comparable handle for free.
type Identity = common.Address

// Anonymous is the distinguished unauthenticated identity (zero address).
// The anonymous identity may never execute an order.
var Anonymous = Identity{}
