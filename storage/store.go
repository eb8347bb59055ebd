// SPDX-License-Identifier: GPL-3.0-only

// Package storage is the persistence layer over users, usage logs and
// presets. Every operation borrows one pooled connection, runs inside a
// transaction and releases the connection on all paths. Quota decisions are
// made here too, as single conditional statements or row-locked
// transactions, so the check and the increment are one atomic unit.
package storage

import (
	"errors"

	"bootstrapper-server/db"
)

var (
	// ErrNotFound is returned when a record does not exist or is not owned
	// by the requesting user.
	ErrNotFound = errors.New("storage: record not found")
	// ErrConstraintViolation is returned when a write breaks a uniqueness
	// constraint, e.g. a colliding API key.
	ErrConstraintViolation = errors.New("storage: constraint violation")
)

type Store struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{pool: pool}
}
