package connector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/services/connector/commands"
	persistence "github.com/status-im/arcadia/services/connector/database"
)

var _ gallery.WalletProvider = (*Service)(nil)

// NewService creates a wallet provider backed by a keypair file. Grants are
// kept in db per origin.
func NewService(db *sql.DB, origin, keyFile string, approver commands.Approver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:       db,
		origin:   origin,
		keyFile:  keyFile,
		approver: approver,
		logger:   logger.Named("connector"),
	}
}

type Service struct {
	db       *sql.DB
	origin   string
	keyFile  string
	approver commands.Approver
	logger   *zap.Logger

	mu      sync.Mutex
	keypair *types.Keypair
}

// Start creates the grant table.
func (s *Service) Start() error {
	return persistence.Migrate(s.db)
}

func (s *Service) Stop() error {
	return nil
}

// Connect shares the wallet account with the service origin.
func (s *Service) Connect(ctx context.Context, trustedOnly bool) (gallery.Account, error) {
	keypair, err := s.loadKeypair()
	if err != nil {
		return nil, err
	}

	cmd := &commands.RequestAccountsCommand{Db: s.db, Approver: s.approver}
	err = cmd.Execute(ctx, s.origin, keypair.PublicKey(), trustedOnly)
	switch {
	case err == nil:
		return keypair, nil
	case errors.Is(err, commands.ErrNoGrantForOrigin), errors.Is(err, commands.ErrAccountsRequestDeniedByUser):
		return nil, fmt.Errorf("%w: %w", gallery.ErrConnectionDenied, err)
	default:
		s.logger.Error("accounts request failed", zap.String("origin", s.origin), zap.Error(err))
		return nil, err
	}
}

// loadKeypair reads the key file once. A missing file means there is no
// wallet at all.
func (s *Service) loadKeypair() (*types.Keypair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keypair != nil {
		return s.keypair, nil
	}
	if s.keyFile == "" {
		return nil, gallery.ErrProviderAbsent
	}

	keypair, err := types.LoadKeypairFile(s.keyFile)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("wallet key file not found", zap.String("path", s.keyFile))
		return nil, gallery.ErrProviderAbsent
	}
	if err != nil {
		return nil, err
	}
	s.keypair = keypair
	return keypair, nil
}

// Grants lists every trusted grant.
func (s *Service) Grants() ([]persistence.Grant, error) {
	return persistence.SelectGrants(s.db)
}

// RevokeGrant forgets the trusted grant of origin.
func (s *Service) RevokeGrant(origin string) error {
	cmd := &commands.RevokePermissionsCommand{Db: s.db}
	if err := cmd.Execute(origin); err != nil {
		return err
	}
	s.logger.Info("grant revoked", zap.String("origin", origin))
	return nil
}
