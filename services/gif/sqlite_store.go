package gif

import (
	"context"
	"database/sql"
	"embed"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/sqlite"
)

const (
	accountsTable   = "gallery_accounts"
	migrationsTable = "gallery_schema_migrations"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the table used by SQLiteStore.
func Migrate(db *sql.DB) error {
	resources, err := sqlite.Resources(migrations, "migrations")
	if err != nil {
		return err
	}
	return sqlite.MigrateTable(db, resources, migrationsTable)
}

var _ gallery.RecordStore = (*SQLiteStore)(nil)

// SQLiteStore keeps galleries in the local encrypted database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type storedAccount struct {
	total uint64
	items []gallery.Item
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func selectAccount(ctx context.Context, q rowQuerier, accountID types.PublicKey) (*storedAccount, error) {
	query, args, err := sq.Select("total_gifs", "gif_list").
		From(accountsTable).
		Where(sq.Eq{"account": accountID.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	account := &storedAccount{}
	err = q.QueryRowContext(ctx, query, args...).Scan(&account.total, &sqlite.JSONBlob{Data: &account.items})
	if err == sql.ErrNoRows {
		return nil, gallery.ErrStoreUninitialized
	}
	if err != nil {
		return nil, err
	}
	if account.items == nil {
		account.items = []gallery.Item{}
	}
	return account, nil
}

func (s *SQLiteStore) Fetch(ctx context.Context, accountID types.PublicKey) ([]gallery.Item, error) {
	account, err := selectAccount(ctx, s.db, accountID)
	if err != nil {
		return nil, err
	}
	return account.items, nil
}

func (s *SQLiteStore) Initialize(ctx context.Context, accountID types.PublicKey, owner gallery.Account) error {
	query, args, err := sq.Insert(accountsTable).
		SetMap(sq.Eq{
			"account":    accountID.String(),
			"owner":      owner.Address().String(),
			"total_gifs": 0,
			"gif_list":   &sqlite.JSONBlob{Data: []gallery.Item{}},
			"created_at": time.Now().Unix(),
		}).
		Suffix("ON CONFLICT(account) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return gallery.ErrAlreadyInitialized
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, accountID types.PublicKey, owner gallery.Account, link string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			err = tx.Commit()
			return
		}
		_ = tx.Rollback()
	}()

	account, err := selectAccount(ctx, tx, accountID)
	if err != nil {
		return err
	}
	items := append(account.items, gallery.Item{Link: link, Submitter: owner.Address().String()})
	query, args, err := sq.Update(accountsTable).
		SetMap(sq.Eq{
			"total_gifs": account.total + 1,
			"gif_list":   &sqlite.JSONBlob{Data: items},
		}).
		Where(sq.Eq{"account": accountID.String()}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
