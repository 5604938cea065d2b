package database

import (
	"context"
	"errors"
)

// ErrTxConflict reports a serialization failure; the unit of work can
// be retried safely.
var ErrTxConflict = errors.New("transaction serialization conflict")

// TxRunner runs a unit of work inside a database transaction. The
// context passed to fn carries the transaction; repositories pick it up
// through their querier resolution.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
	// RunSerializable uses serializable isolation; conflicts surface as
	// ErrTxConflict.
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
