package storage

import (
	"fmt"

	"github.com/hwanjo/swapdesk/pkg/swap"
)

// Pebble key schema. Three durable structures:
//   acc:{address}   identity -> account
//   ord:{id}        order id -> order (id zero-padded for range scans)
//   seq:order       single order counter
const (
	prefixAccount = "acc:"
	prefixOrder   = "ord:"
	keyOrderSeq   = "seq:order"
)

// accountKey returns the key for an account.
// Format: "acc:{address}", e.g. "acc:0x742d35cc6634C0532925a3b844Bc9e7595f0bEb0"
func accountKey(addr swap.Identity) []byte {
	return []byte(prefixAccount + addr.Hex())
}

// orderKey returns the key for an order.
// Format: "ord:{id}" with the id zero-padded to 20 digits so lexicographic
// order matches numeric order.
func orderKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixOrder, id))
}

func orderSeqKey() []byte {
	return []byte(keyOrderSeq)
}
