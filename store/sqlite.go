package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amosavian/WebNativeBridgeKit/errors"
)

const credentialSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	service     TEXT NOT NULL,
	account     TEXT NOT NULL,
	secret      BLOB NOT NULL,
	modified_at INTEGER NOT NULL,
	PRIMARY KEY (service, account)
);
`

// SQLite is a SecureStore backed by a local SQLite database. It is safe
// for concurrent use; database/sql serializes access to the underlying
// connection pool.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a credential store at dsn.
// Use ":memory:" for a throwaway store.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.StoreFailure("open", err)
	}
	if _, err := db.Exec(credentialSchema); err != nil {
		db.Close()
		return nil, errors.StoreFailure("migrate", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, service, account string) ([]byte, error) {
	var secret []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT secret FROM credentials WHERE service = ? AND account = ?`,
		service, account,
	).Scan(&secret)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ItemNotFound(service, account)
	}
	if err != nil {
		return nil, errors.StoreFailure("get", err)
	}
	return secret, nil
}

func (s *SQLite) Set(ctx context.Context, service, account string, secret []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (service, account, secret, modified_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (service, account) DO UPDATE SET
		   secret = excluded.secret, modified_at = excluded.modified_at`,
		service, account, secret, time.Now().Unix(),
	)
	if err != nil {
		return errors.StoreFailure("set", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, service, account string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE service = ? AND account = ?`,
		service, account,
	)
	if err != nil {
		return errors.StoreFailure("delete", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ItemNotFound(service, account)
	}
	return nil
}

func (s *SQLite) Items(ctx context.Context, service string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account, modified_at FROM credentials
		 WHERE service = ? ORDER BY account`,
		service,
	)
	if err != nil {
		return nil, errors.StoreFailure("items", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var account string
		var modified int64
		if err := rows.Scan(&account, &modified); err != nil {
			return nil, errors.StoreFailure("items", err)
		}
		out = append(out, Item{
			Service:    service,
			Account:    account,
			ModifiedAt: time.Unix(modified, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFailure("items", err)
	}
	return out, nil
}
