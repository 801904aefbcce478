package rpc

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/chain/tx"
	"github.com/status-im/arcadia/chain/types"
)

// List of RPC client errors.
var (
	ErrMethodNotFound       = errors.New("The method does not exist/is not available")
	ErrTransactionFailed    = errors.New("transaction failed")
	ErrUnsupportedEncoding  = errors.New("unsupported account data encoding")
	ErrConfirmationTimedOut = errors.New("transaction was not confirmed in time")
)

// Cluster method names.
const (
	MethodGetAccountInfo       = "getAccountInfo"
	MethodGetLatestBlockhash   = "getLatestBlockhash"
	MethodSendTransaction      = "sendTransaction"
	MethodGetSignatureStatuses = "getSignatureStatuses"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	maxPollInterval     = 4 * time.Second
)

var errNotConfirmed = errors.New("transaction not confirmed yet")

var _ ClusterClient = (*Client)(nil)

// ClusterClient is the subset of cluster calls the gallery program client uses.
type ClusterClient interface {
	GetAccountInfo(ctx context.Context, account types.PublicKey, commitment string) (*AccountInfo, error)
	GetLatestBlockhash(ctx context.Context, commitment string) (types.PublicKey, error)
	SendTransaction(ctx context.Context, transaction *tx.Transaction, preflightCommitment string) (types.Signature, error)
	ConfirmTransaction(ctx context.Context, sig types.Signature, commitment string) error
}

// RPCContext is the slot context attached to most responses.
type RPCContext struct {
	Slot uint64 `json:"slot"`
}

// AccountInfo is the decoded value of getAccountInfo.
type AccountInfo struct {
	Lamports   uint64          `json:"lamports"`
	Owner      types.PublicKey `json:"owner"`
	Executable bool            `json:"executable"`
	RentEpoch  uint64          `json:"rentEpoch"`
	// Data holds [payload, encoding].
	Data []string `json:"data"`
}

// Bytes decodes the base64 account data.
func (a *AccountInfo) Bytes() ([]byte, error) {
	if len(a.Data) != 2 || a.Data[1] != "base64" {
		return nil, ErrUnsupportedEncoding
	}
	return base64.StdEncoding.DecodeString(a.Data[0])
}

// AccountInfoResult is the raw getAccountInfo result. Value is nil when the
// account does not exist.
type AccountInfoResult struct {
	Context RPCContext   `json:"context"`
	Value   *AccountInfo `json:"value"`
}

// BlockhashResult is the raw getLatestBlockhash result.
type BlockhashResult struct {
	Context RPCContext `json:"context"`
	Value   struct {
		Blockhash            string `json:"blockhash"`
		LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
	} `json:"value"`
}

// SignatureStatus is one entry of getSignatureStatuses.
type SignatureStatus struct {
	Slot               uint64      `json:"slot"`
	Confirmations      *uint64     `json:"confirmations"`
	Err                interface{} `json:"err"`
	ConfirmationStatus string      `json:"confirmationStatus"`
}

// SignatureStatusesResult is the raw getSignatureStatuses result.
type SignatureStatusesResult struct {
	Context RPCContext         `json:"context"`
	Value   []*SignatureStatus `json:"value"`
}

var commitmentRank = map[string]int{
	"processed": 0,
	"confirmed": 1,
	"finalized": 2,
}

// Reached reports whether the status has reached the wanted commitment.
func (s *SignatureStatus) Reached(commitment string) bool {
	if s == nil {
		return false
	}
	return commitmentRank[s.ConfirmationStatus] >= commitmentRank[commitment]
}

// GetAccountInfo returns the account or nil when it does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, account types.PublicKey, commitment string) (*AccountInfo, error) {
	var result AccountInfoResult
	err := c.CallContext(ctx, &result, MethodGetAccountInfo, account.String(), map[string]interface{}{
		"encoding":   "base64",
		"commitment": commitment,
	})
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// GetLatestBlockhash returns a recent blockhash to build transactions with.
func (c *Client) GetLatestBlockhash(ctx context.Context, commitment string) (types.PublicKey, error) {
	var result BlockhashResult
	err := c.CallContext(ctx, &result, MethodGetLatestBlockhash, map[string]interface{}{
		"commitment": commitment,
	})
	if err != nil {
		return types.PublicKey{}, err
	}
	hash, err := types.PublicKeyFromBase58(result.Value.Blockhash)
	if err != nil {
		return types.PublicKey{}, fmt.Errorf("decode blockhash %q: %w", result.Value.Blockhash, err)
	}
	return hash, nil
}

// SendTransaction submits a signed transaction and returns its signature.
func (c *Client) SendTransaction(ctx context.Context, transaction *tx.Transaction, preflightCommitment string) (types.Signature, error) {
	wire, err := transaction.Serialize()
	if err != nil {
		return types.Signature{}, err
	}

	var result string
	err = c.CallContext(ctx, &result, MethodSendTransaction, base64.StdEncoding.EncodeToString(wire), map[string]interface{}{
		"encoding":            "base64",
		"preflightCommitment": preflightCommitment,
	})
	if err != nil {
		return types.Signature{}, err
	}

	sig, err := types.SignatureFromBase58(result)
	if err != nil {
		return types.Signature{}, fmt.Errorf("decode signature %q: %w", result, err)
	}
	if sig != transaction.Signature() {
		c.logger.Warn("cluster returned unexpected signature", zap.Stringer("expected", transaction.Signature()), zap.String("got", result))
	}
	return sig, nil
}

// GetSignatureStatus returns the status of a transaction, nil if unknown.
func (c *Client) GetSignatureStatus(ctx context.Context, sig types.Signature) (*SignatureStatus, error) {
	var result SignatureStatusesResult
	err := c.CallContext(ctx, &result, MethodGetSignatureStatuses, []string{sig.String()}, map[string]interface{}{
		"searchTransactionHistory": false,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Value) == 0 {
		return nil, nil
	}
	return result.Value[0], nil
}

// ConfirmTransaction polls the signature status with exponential backoff
// until it reaches commitment, the transaction fails, or ctx is done.
func (c *Client) ConfirmTransaction(ctx context.Context, sig types.Signature, commitment string) error {
	err := backoff.Retry(func() error {
		status, err := c.GetSignatureStatus(ctx, sig)
		switch {
		case err != nil:
			return backoff.Permanent(err)
		case status != nil && status.Err != nil:
			return backoff.Permanent(fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, status.Err))
		case status.Reached(commitment):
			return nil
		}
		return errNotConfirmed
	}, backoff.WithContext(newPollBackOff(), ctx))

	if err != nil && !errors.Is(err, ErrTransactionFailed) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrConfirmationTimedOut, sig)
	}
	return err
}

func newPollBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultPollInterval
	b.MaxInterval = maxPollInterval
	// ctx bounds the wait.
	b.MaxElapsedTime = 0
	return b
}
