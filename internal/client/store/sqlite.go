package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tapcard/internal/cryptox"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

// SQLiteStore is a Store over the credentials table. Values are sealed
// before they reach the database.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
	log logging.Logger
}

// NewSQLiteStore binds a store to a migrated database (see OpenDB). The
// sealing key is derived from secret and the database salt, which is created
// on first use.
func NewSQLiteStore(ctx context.Context, db *sql.DB, secret string, log logging.Logger) (*SQLiteStore, error) {
	salt, err := loadOrCreateSalt(ctx, db)
	if err != nil {
		return nil, err
	}

	return &SQLiteStore{
		db:  db,
		key: cryptox.DeriveKey([]byte(secret), salt),
		log: log.With("component", "store"),
	}, nil
}

func loadOrCreateSalt(ctx context.Context, db *sql.DB) ([]byte, error) {
	var salt []byte

	err := withTx(ctx, db, func(q querier) error {
		err := q.QueryRowContext(ctx, `SELECT salt FROM store_salt WHERE id = 1`).Scan(&salt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		salt, err = cryptox.RandomBytes(cryptox.SaltSize)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `INSERT INTO store_salt (id, salt) VALUES (1, ?)`, salt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load store salt: %w", err)
	}
	return salt, nil
}

// Get returns the unsealed value for key. Read and decryption failures are
// logged and reported as absent, as is a blank value.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Error(ctx, "failed to read credential", "key", key, "error", err)
		return "", false
	}

	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		s.log.Warn(ctx, "credential cannot be unsealed", "key", key, "error", err)
		return "", false
	}
	return string(plain), len(plain) > 0
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return s.put(ctx, s.db, key, value)
}

func (s *SQLiteStore) SetMany(ctx context.Context, values map[string]string) error {
	return withTx(ctx, s.db, func(q querier) error {
		for k, v := range values {
			if err := s.put(ctx, q, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete credential[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) put(ctx context.Context, q querier, key, value string) error {
	sealed, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to seal credential[%s]: %w", key, err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, sealed)
	if err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", key, err)
	}
	return nil
}
