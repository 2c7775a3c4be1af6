package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when an operation requiring a non-transactional
	// context is attempted while already inside a transaction.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when a transaction-specific operation is attempted
	// while not currently inside a transaction.
	ErrNotInTx = errors.New("not in tx")
	// ErrDuplicateEmail is returned by StoreUser and UpdateUser when the write
	// would violate the unique constraint on the users email column. It is the
	// distinguishable constraint-violation signal the domain layer relies on
	// to turn a racing duplicate insert into a user-facing conflict.
	ErrDuplicateEmail = errors.New("duplicate email")
)
