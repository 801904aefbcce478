package gallery

import (
	"context"

	"github.com/status-im/arcadia/chain/types"
)

//go:generate mockgen -package=mock_gallery -destination=mock/gallery_mock.go -source=types.go

// Item is one submitted link and the address that submitted it.
type Item struct {
	Link      string `json:"gifLink"`
	Submitter string `json:"userAddress"`
}

// Account is a connected wallet account. It signs whatever the record store
// needs signed on the user's behalf.
type Account interface {
	Address() types.PublicKey
	Sign(message []byte) (types.Signature, error)
}

// WalletProvider grants access to the user's account.
type WalletProvider interface {
	// Connect returns the user's account. With trustedOnly set it never
	// prompts and fails unless a trusted grant already exists.
	Connect(ctx context.Context, trustedOnly bool) (Account, error)
}

// RecordStore holds the item collection under a fixed account identifier.
type RecordStore interface {
	// Fetch returns the whole collection. It fails with ErrStoreUninitialized
	// when the account was never created.
	Fetch(ctx context.Context, accountID types.PublicKey) ([]Item, error)
	// Initialize creates the account, paid and signed by owner.
	Initialize(ctx context.Context, accountID types.PublicKey, owner Account) error
	// Append adds link to the collection, attributed to owner.
	Append(ctx context.Context, accountID types.PublicKey, owner Account, link string) error
}
