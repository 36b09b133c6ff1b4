// Package sqlite implements the storage interfaces on a local SQLite
// database. It backs local development and demo mode; the hosted
// deployment uses the postgres package instead.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/storage"
)

// Store implements storage.Store backed by SQLite.
type Store struct {
	db *DB
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// nullUUID converts an optional UUID to a nullable string column value.
func nullUUID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

// scanUUID parses a nullable UUID column back into a pointer.
func scanUUID(ns sql.NullString) (*uuid.UUID, error) {
	if !ns.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(ns.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
