package gif

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/arcadia/chain/tx"
	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/rpc"
)

var _ gallery.RecordStore = (*ChainStore)(nil)

// ChainStore keeps the gallery in an account of the gif program.
type ChainStore struct {
	client         rpc.ClusterClient
	programID      types.PublicKey
	baseKeypair    *types.Keypair
	commitment     string
	confirmTimeout time.Duration
	logger         *zap.Logger
}

// NewChainStore creates a store talking to the gif program. baseKeypair is
// only needed to create the account and may be nil otherwise.
func NewChainStore(client rpc.ClusterClient, programID types.PublicKey, baseKeypair *types.Keypair, commitment string, confirmTimeout time.Duration, logger *zap.Logger) *ChainStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainStore{
		client:         client,
		programID:      programID,
		baseKeypair:    baseKeypair,
		commitment:     commitment,
		confirmTimeout: confirmTimeout,
		logger:         logger.Named("gif"),
	}
}

func (s *ChainStore) Fetch(ctx context.Context, accountID types.PublicKey) ([]gallery.Item, error) {
	info, err := s.client.GetAccountInfo(ctx, accountID, s.commitment)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, gallery.ErrStoreUninitialized
	}
	if !info.Owner.Equals(s.programID) {
		return nil, ErrWrongAccountOwner
	}

	data, err := info.Bytes()
	if err != nil {
		return nil, err
	}
	account, err := DecodeBaseAccount(data)
	if err != nil {
		return nil, err
	}
	return account.Items(), nil
}

func (s *ChainStore) Initialize(ctx context.Context, accountID types.PublicKey, owner gallery.Account) error {
	if s.baseKeypair == nil {
		return ErrMissingBaseKeypair
	}
	if !s.baseKeypair.PublicKey().Equals(accountID) {
		return ErrBaseAccountMismatch
	}

	ix := StartStuffOffInstruction(s.programID, accountID, owner.Address())
	sig, err := s.send(ctx, owner, ix, s.baseKeypair)
	if err != nil {
		return err
	}
	s.logger.Info("created gallery account", zap.Stringer("account", accountID), zap.Stringer("signature", sig))
	return nil
}

func (s *ChainStore) Append(ctx context.Context, accountID types.PublicKey, owner gallery.Account, link string) error {
	ix := AddGifInstruction(s.programID, accountID, owner.Address(), link)
	sig, err := s.send(ctx, owner, ix)
	if err != nil {
		return err
	}
	s.logger.Debug("gif sent to program", zap.String("link", link), zap.Stringer("signature", sig))
	return nil
}

// send signs ix with owner as fee payer plus any extra signers, submits it
// and waits for the configured commitment.
func (s *ChainStore) send(ctx context.Context, owner gallery.Account, ix tx.Instruction, extra ...tx.Signer) (types.Signature, error) {
	blockhash, err := s.client.GetLatestBlockhash(ctx, s.commitment)
	if err != nil {
		return types.Signature{}, err
	}

	signers := append([]tx.Signer{owner}, extra...)
	transaction, err := tx.NewTransaction(owner.Address(), blockhash, []tx.Instruction{ix}, signers...)
	if err != nil {
		return types.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	sig, err := s.client.SendTransaction(ctx, transaction, s.commitment)
	if err != nil {
		return types.Signature{}, err
	}

	confirmCtx := ctx
	if s.confirmTimeout > 0 {
		var cancel context.CancelFunc
		confirmCtx, cancel = context.WithTimeout(ctx, s.confirmTimeout)
		defer cancel()
	}
	if err := s.client.ConfirmTransaction(confirmCtx, sig, s.commitment); err != nil {
		return sig, err
	}
	return sig, nil
}
