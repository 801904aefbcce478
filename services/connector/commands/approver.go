package commands

import (
	"context"
	"errors"

	"github.com/status-im/arcadia/chain/types"
)

// errors
var (
	ErrAccountsRequestDeniedByUser = errors.New("accounts request denied by user")
	ErrNoGrantForOrigin            = errors.New("origin has no trusted grant")
)

// Approver asks the user whether origin may see account.
type Approver interface {
	RequestAccounts(ctx context.Context, origin string, account types.PublicKey) error
}

// AutoApprover accepts every request. It is used where the request itself
// is the user's consent, such as a click on the connect button.
type AutoApprover struct{}

func (AutoApprover) RequestAccounts(context.Context, string, types.PublicKey) error {
	return nil
}
