package sortedvec

import "errors"

var (
	// ErrInvalidConfig signals an invalid container configuration.
	ErrInvalidConfig = errors.New("sortedvec: invalid configuration")
	// ErrUnordered signals that entries are not in strictly ascending key order.
	ErrUnordered = errors.New("sortedvec: entries out of order")
	// ErrLenMismatch signals that the row counter of a two-level container
	// disagrees with the rows actually stored.
	ErrLenMismatch = errors.New("sortedvec: length bookkeeping mismatch")
	// ErrEmptyPartition signals a partition without rows.
	ErrEmptyPartition = errors.New("sortedvec: empty partition")
	// ErrPrimaryKey signals a row filed under the wrong primary key.
	ErrPrimaryKey = errors.New("sortedvec: primary key mismatch")
	// ErrNilEntry signals a nil shared entry.
	ErrNilEntry = errors.New("sortedvec: nil entry")
)
