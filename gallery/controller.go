package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/common"
	"github.com/status-im/arcadia/metrics"
	"github.com/status-im/arcadia/signal"
)

const (
	opFetch      = "fetch"
	opInitialize = "initialize"
	opAppend     = "append"
)

// Config is fixed for the lifetime of a controller.
type Config struct {
	// AccountID identifies the collection inside the record store.
	AccountID types.PublicKey
	// Session tags signals and log lines emitted by this controller.
	Session string
}

// State is the view state derived from the connection and the collection.
type State int

const (
	StateDisconnected State = iota
	StateUninitialized
	StateReady
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Outcome reports both steps of a mutate-then-refresh workflow.
type Outcome struct {
	// MutateErr is the error of the mutation. The refresh never runs when it
	// is set.
	MutateErr error
	// Refreshed is set when the refresh step ran.
	Refreshed bool
	// RefreshErr is the error of the refresh step.
	RefreshErr error
}

// Err returns the first failure of the workflow.
func (o Outcome) Err() error {
	if o.MutateErr != nil {
		return o.MutateErr
	}
	return o.RefreshErr
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	State   State
	Address string
	Draft   string
	// Items is nil while the collection is absent.
	Items   []Item
	Warning string
}

// Controller holds one user's gallery session: the connected account, the
// draft link and the last fetched collection.
type Controller struct {
	config   Config
	provider WalletProvider
	store    RecordStore
	logger   *zap.Logger

	mu      sync.RWMutex
	account Account
	draft   string
	items   []Item
	warning string
}

// NewController creates a disconnected controller. A nil provider means no
// wallet is installed.
func NewController(config Config, provider WalletProvider, store RecordStore, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if common.IsNil(provider) {
		provider = nil
	}
	return &Controller{
		config:   config,
		provider: provider,
		store:    store,
		logger:   logger.Named("gallery").With(zap.String("session", config.Session)),
	}
}

// ProbeExistingConnection connects without prompting when the user already
// trusts this application, then loads the collection.
func (c *Controller) ProbeExistingConnection(ctx context.Context) error {
	return c.connect(ctx, true)
}

// Connect asks the user for access to their account, then loads the
// collection.
func (c *Controller) Connect(ctx context.Context) error {
	return c.connect(ctx, false)
}

func (c *Controller) connect(ctx context.Context, trusted bool) error {
	if c.currentAccount() != nil {
		return ErrAlreadyConnected
	}

	if c.provider == nil {
		c.providerAbsent()
		metrics.RecordWalletConnect(trusted, ErrProviderAbsent)
		return ErrProviderAbsent
	}

	account, err := c.provider.Connect(ctx, trusted)
	if err != nil {
		err = providerError(err)
		metrics.RecordWalletConnect(trusted, err)
		switch {
		case errors.Is(err, ErrProviderAbsent):
			c.providerAbsent()
		case trusted:
			c.logger.Debug("no trusted connection", zap.Error(err))
		default:
			c.logger.Warn("wallet connection failed", zap.Error(err))
		}
		return err
	}
	metrics.RecordWalletConnect(trusted, nil)

	address := account.Address().String()
	c.mu.Lock()
	if c.account != nil {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.account = account
	c.warning = ""
	c.mu.Unlock()

	c.logger.Info("wallet connected", zap.String("address", address), zap.Bool("trusted", trusted))
	signal.SendWalletConnected(c.config.Session, address, trusted)

	// The collection is loaded whenever the address becomes known. A failed
	// load leaves it absent and is not a connection failure.
	_ = c.FetchItems(ctx)
	return nil
}

func (c *Controller) providerAbsent() {
	c.mu.Lock()
	c.warning = ErrProviderAbsent.Details
	c.mu.Unlock()
	c.logger.Warn("wallet provider absent")
	signal.SendWalletProviderAbsent(c.config.Session, ErrProviderAbsent.Details)
}

// FetchItems replaces the collection with the store's current contents. On
// any failure the collection becomes absent.
func (c *Controller) FetchItems(ctx context.Context) error {
	if c.currentAccount() == nil {
		return ErrNotConnected
	}

	items, err := c.store.Fetch(ctx, c.config.AccountID)
	if err != nil {
		err = storeError(err)
		metrics.RecordStoreCall(opFetch, err)
		c.setItems(nil)
		if errors.Is(err, ErrStoreUninitialized) {
			c.logger.Info("gallery account not initialized", zap.Stringer("account", c.config.AccountID))
			signal.SendGalleryStoreUninitialized(c.config.Session, c.config.AccountID.String())
		} else {
			c.logger.Error("failed to fetch gallery items", zap.Error(err))
		}
		return err
	}
	metrics.RecordStoreCall(opFetch, nil)

	fetched := make([]Item, len(items))
	copy(fetched, items)
	c.setItems(fetched)
	metrics.SetGalleryItems(len(fetched))
	c.logger.Debug("gallery items fetched", zap.Int("count", len(fetched)))
	signal.SendGalleryItemsUpdated(c.config.Session, len(fetched))
	return nil
}

// InitializeStore creates the collection for the connected account and then
// refreshes it.
func (c *Controller) InitializeStore(ctx context.Context) Outcome {
	account := c.currentAccount()
	if account == nil {
		return Outcome{MutateErr: ErrNotConnected}
	}
	if c.hasItems() {
		return Outcome{MutateErr: ErrAlreadyInitialized}
	}

	err := c.store.Initialize(ctx, c.config.AccountID, account)
	switch {
	case errors.Is(err, ErrAlreadyInitialized):
		// Another session created the account since the last fetch.
		metrics.RecordStoreCall(opInitialize, nil)
		c.logger.Info("gallery account already initialized", zap.Stringer("account", c.config.AccountID))
	case err != nil:
		err = storeError(err)
		metrics.RecordStoreCall(opInitialize, err)
		c.logger.Error("failed to initialize gallery account", zap.Error(err))
		return Outcome{MutateErr: err}
	default:
		metrics.RecordStoreCall(opInitialize, nil)
		c.logger.Info("gallery account initialized", zap.Stringer("account", c.config.AccountID))
	}

	return Outcome{Refreshed: true, RefreshErr: c.FetchItems(ctx)}
}

// SubmitItem appends the draft to the collection and then refreshes it. The
// draft is cleared only when the append succeeds.
func (c *Controller) SubmitItem(ctx context.Context) Outcome {
	c.mu.RLock()
	account, draft, ready := c.account, c.draft, c.items != nil
	c.mu.RUnlock()

	if strings.TrimSpace(draft) == "" {
		c.logger.Debug("no gif link given")
		return Outcome{MutateErr: ErrEmptyDraft}
	}
	if account == nil {
		return Outcome{MutateErr: ErrNotConnected}
	}
	if !ready {
		return Outcome{MutateErr: ErrStoreNotReady}
	}

	if err := c.store.Append(ctx, c.config.AccountID, account, draft); err != nil {
		err = storeError(err)
		metrics.RecordStoreCall(opAppend, err)
		c.logger.Error("failed to submit gif", zap.Error(err))
		return Outcome{MutateErr: err}
	}
	metrics.RecordStoreCall(opAppend, nil)
	c.logger.Info("gif submitted", zap.String("link", draft))

	refreshErr := c.FetchItems(ctx)

	c.mu.Lock()
	// Edits made while the append was in flight are kept.
	if c.draft == draft {
		c.draft = ""
	}
	c.mu.Unlock()

	return Outcome{Refreshed: true, RefreshErr: refreshErr}
}

// SetDraft replaces the draft link. It is never validated.
func (c *Controller) SetDraft(draft string) {
	c.mu.Lock()
	c.draft = draft
	c.mu.Unlock()
}

// DismissWarning clears the pending user-visible warning.
func (c *Controller) DismissWarning() {
	c.mu.Lock()
	c.warning = ""
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		State:   StateDisconnected,
		Draft:   c.draft,
		Warning: c.warning,
	}
	if c.account == nil {
		return s
	}
	s.Address = c.account.Address().String()
	if c.items == nil {
		s.State = StateUninitialized
		return s
	}
	s.State = StateReady
	s.Items = make([]Item, len(c.items))
	copy(s.Items, c.items)
	return s
}

// State returns the current view state.
func (c *Controller) State() State {
	return c.Snapshot().State
}

func (c *Controller) currentAccount() Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

func (c *Controller) hasItems() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items != nil
}

func (c *Controller) setItems(items []Item) {
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

// providerError keeps taxonomy errors and reports anything else as a denied
// connection.
func providerError(err error) error {
	if errors.Is(err, ErrProviderAbsent) || errors.Is(err, ErrConnectionDenied) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConnectionDenied, err)
}

// storeError keeps taxonomy errors and reports anything else as a failed
// store call.
func storeError(err error) error {
	if errors.Is(err, ErrStoreUninitialized) || errors.Is(err, ErrStoreCallFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreCallFailure, err)
}
